// Package vaultfs provides root-scoped filesystem access for vault documents.
//
// Every read, listing and stat is checked against the configured vault roots
// before touching the filesystem. Paths outside the roots are rejected with
// ErrAccessDenied so callers never observe content they are not allowed to
// see. The package also applies the document file-type allow-list used by
// the discovery stages.
package vaultfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptvault/internal/logging"
)

// ErrAccessDenied indicates a path that resolves outside the allowed vault roots.
var ErrAccessDenied = errors.New("path outside allowed vault roots")

// Entry describes one directory entry returned by ListDir.
type Entry struct {
	Name   string
	IsFile bool
}

// VaultFS scopes filesystem access to a fixed set of root directories and
// an extension allow-list. It is read-only configuration after construction
// and safe for concurrent use.
type VaultFS struct {
	roots  []string
	exts   []string
	logger *logging.AppLogger
}

// New creates a VaultFS for the given roots and extension allow-list.
// Roots are expanded (~/) and made absolute; at least one root is required.
func New(roots []string, exts []string, logger *logging.AppLogger) (*VaultFS, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one vault root is required")
	}

	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		expanded := ExpandPath(strings.TrimSpace(root))
		if expanded == "" {
			return nil, fmt.Errorf("vault root cannot be empty")
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve vault root %q: %w", root, err)
		}
		resolved = append(resolved, filepath.Clean(abs))
	}

	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	if len(normalized) == 0 {
		normalized = []string{".md", ".markdown", ".txt"}
	}

	return &VaultFS{
		roots:  resolved,
		exts:   normalized,
		logger: logger,
	}, nil
}

// ExpandPath expands a path that starts with "~/" to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if home directory unavailable
	}

	return filepath.Join(home, path[2:])
}

// Roots returns the configured vault roots in priority order.
func (v *VaultFS) Roots() []string {
	out := make([]string, len(v.roots))
	copy(out, v.roots)
	return out
}

// IsAllowedFile reports whether the filename carries an allowed extension.
func (v *VaultFS) IsAllowedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range v.exts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// WithinRoots reports whether path resolves inside one of the vault roots.
func (v *VaultFS) WithinRoots(path string) bool {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}

	for _, root := range v.roots {
		if abs == root || strings.HasPrefix(abs, root+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// checkContained rejects paths that escape the vault roots.
func (v *VaultFS) checkContained(path string) error {
	if !v.WithinRoots(path) {
		return fmt.Errorf("%w: %s", ErrAccessDenied, path)
	}
	return nil
}

// ReadFile reads a document inside the vault roots.
// Missing files surface as os.ErrNotExist for callers that treat absence
// as a benign empty result.
func (v *VaultFS) ReadFile(path string) ([]byte, error) {
	if err := v.checkContained(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ListDir lists the entries directly inside dir (non-recursive).
func (v *VaultFS) ListDir(dir string) ([]Entry, error) {
	if err := v.checkContained(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			Name:   e.Name(),
			IsFile: e.Type().IsRegular(),
		})
	}
	return out, nil
}

// Stat reports existence and whether the path is a regular file.
func (v *VaultFS) Stat(path string) (exists bool, isFile bool) {
	if !v.WithinRoots(path) {
		return false, false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return true, info.Mode().IsRegular()
}

// FileExists reports whether path is an existing regular file inside the roots.
func (v *VaultFS) FileExists(path string) bool {
	exists, isFile := v.Stat(path)
	return exists && isFile
}

// CreateNote writes a new document under dir, refusing to overwrite.
//
// The existence check and the write are two separate syscalls; two callers
// racing on the same name can both pass the check. The O_EXCL open closes
// most of that window but the chosen-name collision itself is accepted as
// a known narrow race.
func (v *VaultFS) CreateNote(dir, name, content string) (string, error) {
	if err := v.checkContained(dir); err != nil {
		return "", err
	}

	if !v.IsAllowedFile(name) {
		name += ".md"
	}
	path := filepath.Join(dir, name)
	if err := v.checkContained(path); err != nil {
		return "", err
	}

	if v.FileExists(path) {
		return "", fmt.Errorf("note already exists: %s", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create note %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("failed to write note %s: %w", path, err)
	}

	if v.logger != nil {
		v.logger.Debug("Created note", "path", path)
	}
	return path, nil
}

// WriteFile replaces the content of an existing document in place.
// Used by the thin task toggling helper; not part of the resolution core.
func (v *VaultFS) WriteFile(path string, content []byte) error {
	if err := v.checkContained(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
