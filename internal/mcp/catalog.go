package mcp

import (
	"fmt"
	"path/filepath"
	"strings"

	"promptvault/internal/prompt"
	"promptvault/internal/vault"
)

// PromptInfo summarizes one discoverable prompt document for listings.
type PromptInfo struct {
	Name        string         `json:"name"`
	Path        string         `json:"path"`
	Description string         `json:"description,omitempty"`
	Aliases     []string       `json:"aliases,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Variables   []VariableInfo `json:"variables,omitempty"`
}

// VariableInfo is the listing view of a declared template variable.
type VariableInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Options     []any  `json:"options,omitempty"`
	Description string `json:"description,omitempty"`
}

// listPrompts enumerates every allowed-type document directly inside the
// vault roots. Unreadable files are skipped so one bad document never hides
// its siblings.
func (s *Server) listPrompts() ([]PromptInfo, error) {
	if s.fs == nil {
		return nil, fmt.Errorf("components not initialized")
	}

	var prompts []PromptInfo
	var skipped int

	for _, root := range s.fs.Roots() {
		entries, err := s.fs.ListDir(root)
		if err != nil {
			s.logger.Warn("Failed to list vault root", "root", root, "error", err)
			continue
		}

		for _, entry := range entries {
			if !entry.IsFile || !s.fs.IsAllowedFile(entry.Name) {
				continue
			}

			path := filepath.Join(root, entry.Name)
			raw, err := s.fs.ReadFile(path)
			if err != nil {
				s.logger.Debug("Skipping unreadable document", "path", path, "error", err)
				skipped++
				continue
			}

			doc := vault.Parse(path, raw)
			prompts = append(prompts, promptInfo(entry.Name, doc))
		}
	}

	s.logger.Info("Prompt listing completed", "prompts", len(prompts), "skipped", skipped)
	return prompts, nil
}

func promptInfo(filename string, doc *vault.Document) PromptInfo {
	info := PromptInfo{
		Name:    strings.TrimSuffix(filename, filepath.Ext(filename)),
		Path:    doc.Path,
		Aliases: doc.Aliases,
		Tags:    doc.Tags,
	}
	if desc, ok := doc.Metadata["description"].(string); ok {
		info.Description = desc
	}

	for _, spec := range prompt.ExtractVariableSpecs(doc.Metadata) {
		info.Variables = append(info.Variables, VariableInfo{
			Name:        spec.Name,
			Type:        string(spec.Type),
			Required:    spec.Required,
			Default:     spec.Default,
			Options:     spec.Options,
			Description: spec.Description,
		})
	}
	return info
}
