// Package vault models documents in a knowledge-vault directory tree.
//
// A document is markdown-like text with an optional YAML frontmatter block.
// Vault content is user-authored, so parsing never fails: malformed
// frontmatter degrades to an empty metadata map with the full text kept as
// the body.
package vault

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Document is a unit of content addressed by a filesystem path.
// Documents are read fresh from storage on every load and never mutated.
type Document struct {
	Path     string
	Raw      string
	Metadata map[string]any
	Body     string
	Aliases  []string
	Tags     []string
}

// Parse splits raw document text into metadata and body.
//
// Absence of a frontmatter block yields empty metadata and the entire text
// as body. Malformed metadata is treated the same way rather than raised as
// an error. The body is trimmed of leading/trailing whitespace; internal
// whitespace is preserved.
func Parse(path string, raw []byte) *Document {
	meta := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		// Degrade: keep the whole text as body
		meta = map[string]any{}
		body = raw
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return &Document{
		Path:     path,
		Raw:      string(raw),
		Metadata: meta,
		Body:     strings.TrimSpace(string(body)),
		Aliases:  NormalizeAliases(meta["aliases"]),
		Tags:     NormalizeTags(meta["tags"]),
	}
}

// Serialize renders the document back to frontmatter + body form.
// Parsing the result reproduces an equivalent body modulo the whitespace trim.
func (d *Document) Serialize() (string, error) {
	if len(d.Metadata) == 0 {
		return d.Body + "\n", nil
	}

	encoded, err := yaml.Marshal(d.Metadata)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(encoded)
	sb.WriteString("---\n\n")
	sb.WriteString(d.Body)
	sb.WriteString("\n")
	return sb.String(), nil
}

// Title returns the metadata title if present, otherwise the filename stem.
func (d *Document) Title() string {
	if title, ok := d.Metadata["title"].(string); ok && strings.TrimSpace(title) != "" {
		return title
	}

	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HasAlias reports whether the document carries the alias, case-insensitively.
func (d *Document) HasAlias(name string) bool {
	for _, alias := range d.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// NormalizeAliases canonicalizes an aliases metadata value into a string list.
// A single string becomes a one-element list; a list is filtered to string
// elements; anything else yields an empty list.
func NormalizeAliases(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// NormalizeTags canonicalizes a tags metadata value into a string list.
// A single string is split on commas and whitespace into non-empty trimmed
// tokens; a list is filtered to string elements; anything else yields an
// empty list.
func NormalizeTags(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case string:
		tokens := strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		out := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
