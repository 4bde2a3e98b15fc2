// Package tasks provides thin checklist tracking over vault documents.
// Task state lives only in the files themselves; there is no persistence
// layer behind it.
package tasks

import (
	"fmt"
	"regexp"
	"strings"

	"promptvault/internal/logging"
	"promptvault/internal/vaultfs"
)

// checkboxPattern matches markdown checklist lines: "- [ ] text" / "- [x] text".
var checkboxPattern = regexp.MustCompile(`^(\s*[-*]\s*\[)([ xX])(\]\s*)(.*)$`)

// Task is one checklist item. Line is the zero-based line number within the
// raw file, so toggling can address the exact line.
type Task struct {
	Line int
	Text string
	Done bool
}

// Summary reports checklist progress for a document.
type Summary struct {
	Total int
	Done  int
}

// Parse extracts checklist items from raw document content.
func Parse(content string) []Task {
	lines := strings.Split(content, "\n")
	tasks := []Task{}

	for i, line := range lines {
		groups := checkboxPattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		tasks = append(tasks, Task{
			Line: i,
			Text: strings.TrimSpace(groups[4]),
			Done: groups[2] != " ",
		})
	}
	return tasks
}

// Summarize counts checklist completion.
func Summarize(items []Task) Summary {
	s := Summary{Total: len(items)}
	for _, t := range items {
		if t.Done {
			s.Done++
		}
	}
	return s
}

// ToggleLine flips the checkbox on the given zero-based line of content.
// Returns the updated content.
func ToggleLine(content string, line int) (string, error) {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return "", fmt.Errorf("line %d out of range", line)
	}

	groups := checkboxPattern.FindStringSubmatch(lines[line])
	if groups == nil {
		return "", fmt.Errorf("line %d is not a checklist item", line)
	}

	mark := "x"
	if groups[2] != " " {
		mark = " "
	}
	lines[line] = groups[1] + mark + groups[3] + groups[4]
	return strings.Join(lines, "\n"), nil
}

// Tracker reads and toggles checklists through the vault filesystem.
type Tracker struct {
	fs     *vaultfs.VaultFS
	logger *logging.AppLogger
}

// NewTracker creates a checklist tracker.
func NewTracker(fs *vaultfs.VaultFS, logger *logging.AppLogger) *Tracker {
	return &Tracker{fs: fs, logger: logger}
}

// List returns the checklist items of the document at path.
func (t *Tracker) List(path string) ([]Task, error) {
	raw, err := t.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(raw)), nil
}

// Toggle flips one checklist item in place and writes the file back.
func (t *Tracker) Toggle(path string, line int) (Task, error) {
	raw, err := t.fs.ReadFile(path)
	if err != nil {
		return Task{}, err
	}

	updated, err := ToggleLine(string(raw), line)
	if err != nil {
		return Task{}, err
	}

	if err := t.fs.WriteFile(path, []byte(updated)); err != nil {
		return Task{}, err
	}

	for _, item := range Parse(updated) {
		if item.Line == line {
			t.logger.Debug("Toggled task", "path", path, "line", line, "done", item.Done)
			return item, nil
		}
	}
	return Task{}, fmt.Errorf("toggled line %d not found after rewrite", line)
}
