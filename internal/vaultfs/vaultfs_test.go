package vaultfs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promptvault/internal/logging"
)

func newTestFS(t *testing.T, roots ...string) *VaultFS {
	t.Helper()

	logger, _ := logging.NewTestLogger()
	fs, err := New(roots, nil, logger)
	if err != nil {
		t.Fatalf("Failed to create VaultFS: %v", err)
	}
	return fs
}

func TestNewRequiresRoots(t *testing.T) {
	logger, _ := logging.NewTestLogger()

	if _, err := New(nil, nil, logger); err == nil {
		t.Error("New should fail without roots")
	}
	if _, err := New([]string{"  "}, nil, logger); err == nil {
		t.Error("New should fail on a blank root")
	}
}

func TestNewNormalizesExtensions(t *testing.T) {
	dir := t.TempDir()
	logger, _ := logging.NewTestLogger()

	fs, err := New([]string{dir}, []string{"md", ".TXT", " "}, logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !fs.IsAllowedFile("note.md") {
		t.Error("Extension without leading dot should be normalized")
	}
	if !fs.IsAllowedFile("note.txt") {
		t.Error("Extension matching should be case-insensitive")
	}
	if fs.IsAllowedFile("note.markdown") {
		t.Error("Unlisted extension should be rejected")
	}
}

func TestIsAllowedFileDefaults(t *testing.T) {
	fs := newTestFS(t, t.TempDir())

	tests := []struct {
		name     string
		expected bool
	}{
		{"note.md", true},
		{"note.MD", true},
		{"note.markdown", true},
		{"note.txt", true},
		{"note.go", false},
		{"note", false},
		{"note.md.bak", false},
	}

	for _, tt := range tests {
		if got := fs.IsAllowedFile(tt.name); got != tt.expected {
			t.Errorf("IsAllowedFile(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("No home directory available: %v", err)
	}

	if got := ExpandPath("~/vault"); got != filepath.Join(home, "vault") {
		t.Errorf("ExpandPath(~/vault) = %q", got)
	}
	if got := ExpandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("Non-tilde path should pass through, got %q", got)
	}
}

func TestWithinRoots(t *testing.T) {
	dir := t.TempDir()
	fs := newTestFS(t, dir)

	if !fs.WithinRoots(dir) {
		t.Error("The root itself should be contained")
	}
	if !fs.WithinRoots(filepath.Join(dir, "sub", "note.md")) {
		t.Error("Nested paths should be contained")
	}
	if fs.WithinRoots(filepath.Dir(dir)) {
		t.Error("The parent of a root should not be contained")
	}
	if fs.WithinRoots(filepath.Join(dir, "..", "escape")) {
		t.Error("Traversal out of the root should not be contained")
	}
	// Prefix similarity is not containment
	if fs.WithinRoots(dir + "-sibling") {
		t.Error("A sibling sharing the root's name prefix should not be contained")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	fs := newTestFS(t, dir)

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("Unexpected content: %q", data)
	}
}

func TestReadFileOutsideRoots(t *testing.T) {
	fs := newTestFS(t, t.TempDir())
	outside := filepath.Join(t.TempDir(), "secret.md")

	_, err := fs.ReadFile(outside)
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Expected ErrAccessDenied, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	dir := t.TempDir()
	fs := newTestFS(t, dir)

	_, err := fs.ReadFile(filepath.Join(dir, "absent.md"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Missing file should surface os.ErrNotExist, got %v", err)
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	fs := newTestFS(t, dir)

	entries, err := fs.ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if !byName["a.md"].IsFile {
		t.Error("a.md should be reported as a file")
	}
	if byName["sub"].IsFile {
		t.Error("sub should not be reported as a file")
	}
}

func TestListDirOutsideRoots(t *testing.T) {
	fs := newTestFS(t, t.TempDir())

	_, err := fs.ListDir(t.TempDir())
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Expected ErrAccessDenied, got %v", err)
	}
}

func TestStatAndFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := newTestFS(t, dir)

	if exists, isFile := fs.Stat(path); !exists || !isFile {
		t.Errorf("Stat(%s) = %v,%v; want true,true", path, exists, isFile)
	}
	if exists, _ := fs.Stat(filepath.Join(dir, "absent.md")); exists {
		t.Error("Stat should report absence")
	}
	if exists, isFile := fs.Stat(dir); !exists || isFile {
		t.Errorf("Stat on a directory should be exists=true,isFile=false, got %v,%v", exists, isFile)
	}

	if !fs.FileExists(path) {
		t.Error("FileExists should see the file")
	}
	if fs.FileExists(dir) {
		t.Error("FileExists should reject directories")
	}
}

func TestCreateNote(t *testing.T) {
	dir := t.TempDir()
	fs := newTestFS(t, dir)

	path, err := fs.CreateNote(dir, "idea", "# Idea\n")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if !strings.HasSuffix(path, "idea.md") {
		t.Errorf("Extension should be appended, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read created note: %v", err)
	}
	if string(data) != "# Idea\n" {
		t.Errorf("Unexpected content: %q", data)
	}

	if _, err := fs.CreateNote(dir, "idea.md", "overwrite"); err == nil {
		t.Error("CreateNote should refuse to overwrite an existing note")
	}
}

func TestCreateNoteOutsideRoots(t *testing.T) {
	fs := newTestFS(t, t.TempDir())

	if _, err := fs.CreateNote(t.TempDir(), "idea", "x"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Expected ErrAccessDenied, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := newTestFS(t, dir)

	if err := fs.WriteFile(path, []byte("new")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("Expected rewritten content, got %q", data)
	}

	if err := fs.WriteFile(filepath.Join(t.TempDir(), "x.md"), []byte("x")); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Expected ErrAccessDenied, got %v", err)
	}
}
