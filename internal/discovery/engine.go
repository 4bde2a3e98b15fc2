// Package discovery locates the best-matching vault document for a name
// using an ordered cascade of strategies: exact filename, frontmatter alias,
// fuzzy filename similarity, then content text. The first directory to
// produce any match short-circuits the whole search; within a directory the
// stage order is a hard tie-break, not a global best-score search.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptvault/internal/logging"
	"promptvault/internal/vault"
	"promptvault/internal/vaultfs"
)

// ErrNotFound signals that every stage across every directory came up empty.
var ErrNotFound = errors.New("no matching document found")

// Strategy names the cascade stage that produced a match.
type Strategy string

const (
	StrategyExact   Strategy = "exact"
	StrategyAlias   Strategy = "alias"
	StrategyFuzzy   Strategy = "fuzzy"
	StrategyContent Strategy = "content"
)

// aliasConfidence is the fixed confidence for alias-stage matches, matching
// the 90% weighting aliases get in ranked suggestions.
const aliasConfidence = 0.9

// exactExtensions are appended to the query when probing exact filename
// variants: the default text extension first, then the plain-text alternate.
var exactExtensions = []string{".md", ".txt"}

// Result is the single selected document for one discovery call.
type Result struct {
	Path     string
	Strategy Strategy
	Score    float64
}

// FS is the filesystem capability the engine consumes.
type FS interface {
	ReadFile(path string) ([]byte, error)
	ListDir(dir string) ([]vaultfs.Entry, error)
	FileExists(path string) bool
	IsAllowedFile(name string) bool
	WithinRoots(path string) bool
}

// Options carries the empirically-tuned thresholds; see config for defaults.
type Options struct {
	FuzzyMinScore   float64
	ContentMinScore float64
	MaxSuggestions  int
}

// Engine runs the discovery cascade over a set of candidate base
// directories. It holds only read-only configuration and is safe for
// concurrent use.
type Engine struct {
	fs     FS
	roots  []string
	opts   Options
	logger *logging.AppLogger
}

// NewEngine creates a discovery engine scoped to the given default roots.
func NewEngine(fs FS, roots []string, opts Options, logger *logging.AppLogger) *Engine {
	return &Engine{
		fs:     fs,
		roots:  roots,
		opts:   opts,
		logger: logger,
	}
}

// Discover returns the best-matching document for name, searching the given
// directories in order (the engine's default roots when searchPaths is
// empty). Returns ErrNotFound when the cascade is exhausted.
func (e *Engine) Discover(name string, searchPaths []string) (*Result, error) {
	dirs := searchPaths
	if len(dirs) == 0 {
		dirs = e.roots
	}

	for _, dir := range dirs {
		// Caller-supplied search paths must stay inside the allowed roots;
		// containment failures propagate instead of degrading to not-found.
		if !e.fs.WithinRoots(dir) {
			return nil, fmt.Errorf("%w: %s", vaultfs.ErrAccessDenied, dir)
		}
		if result := e.searchDirectory(name, dir); result != nil {
			e.logger.Debug("Discovery match",
				"name", name,
				"path", result.Path,
				"strategy", result.Strategy,
				"score", result.Score,
			)
			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// searchDirectory runs the four stages against one directory.
func (e *Engine) searchDirectory(name, dir string) *Result {
	if result := e.exactStage(name, dir); result != nil {
		return result
	}
	if result := e.aliasStage(name, dir); result != nil {
		return result
	}
	if result := e.fuzzyStage(name, dir); result != nil {
		return result
	}
	return e.contentStage(name, dir)
}

// exactStage probes a small set of filename variants in enumeration order:
// the name as-is, with each default extension appended, then the lowercased
// versions of each. The first existing allowed-type file wins.
func (e *Engine) exactStage(name, dir string) *Result {
	variants := filenameVariants(name)

	for _, variant := range variants {
		if !e.fs.IsAllowedFile(variant) {
			continue
		}
		path := filepath.Join(dir, variant)
		if e.fs.FileExists(path) {
			return &Result{Path: path, Strategy: StrategyExact, Score: 1.0}
		}
	}
	return nil
}

func filenameVariants(name string) []string {
	variants := []string{name}
	for _, ext := range exactExtensions {
		variants = append(variants, name+ext)
	}

	lower := strings.ToLower(name)
	if lower != name {
		variants = append(variants, lower)
		for _, ext := range exactExtensions {
			variants = append(variants, lower+ext)
		}
	}
	return variants
}

// aliasStage returns the first file whose frontmatter alias list contains
// the name under case-insensitive equality.
func (e *Engine) aliasStage(name, dir string) *Result {
	for _, file := range e.listFiles(dir) {
		path := filepath.Join(dir, file)
		doc := e.loadDocument(path)
		if doc == nil {
			continue
		}
		if doc.HasAlias(name) {
			return &Result{Path: path, Strategy: StrategyAlias, Score: aliasConfidence}
		}
	}
	return nil
}

// fuzzyStage scores every filename (extension stripped) against the name and
// selects the highest scorer above the configured minimum, re-verified to
// still exist before being returned.
func (e *Engine) fuzzyStage(name, dir string) *Result {
	var bestPath string
	var bestScore float64

	for _, file := range e.listFiles(dir) {
		score := Score(name, Stem(file))
		if score > e.opts.FuzzyMinScore && score > bestScore {
			bestScore = score
			bestPath = filepath.Join(dir, file)
		}
	}

	if bestPath == "" || !e.fs.FileExists(bestPath) {
		return nil
	}
	return &Result{Path: bestPath, Strategy: StrategyFuzzy, Score: bestScore}
}

// contentStage scores each parsed document by title containment plus capped
// body occurrence count, and returns the best scorer above the minimum.
func (e *Engine) contentStage(name, dir string) *Result {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil
	}

	var bestPath string
	var bestScore float64

	for _, file := range e.listFiles(dir) {
		path := filepath.Join(dir, file)
		doc := e.loadDocument(path)
		if doc == nil {
			continue
		}

		score := contentScore(query, doc)
		if score > e.opts.ContentMinScore && score > bestScore {
			bestScore = score
			bestPath = path
		}
	}

	if bestPath == "" {
		return nil
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return &Result{Path: bestPath, Strategy: StrategyContent, Score: bestScore}
}

// contentScore weights a metadata title containing the query at
// 0.8 × (query length / title length), plus body occurrences capped at 0.5
// (0.1 per occurrence).
func contentScore(query string, doc *vault.Document) float64 {
	score := 0.0

	title := strings.ToLower(doc.Title())
	if title != "" && strings.Contains(title, query) {
		score += 0.8 * float64(len(query)) / float64(len(title))
	}

	occurrences := strings.Count(strings.ToLower(doc.Body), query)
	if occurrences > 0 {
		bodyScore := float64(occurrences) * 0.1
		if bodyScore > 0.5 {
			bodyScore = 0.5
		}
		score += bodyScore
	}

	return score
}

// listFiles enumerates allowed-type files directly in dir. A missing
// directory is a benign empty result; any other listing error is logged and
// likewise yields nothing, so one bad directory never aborts the search.
func (e *Engine) listFiles(dir string) []string {
	entries, err := e.fs.ListDir(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			e.logger.Warn("Directory listing failed during discovery", "dir", dir, "error", err)
		}
		return nil
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsFile && e.fs.IsAllowedFile(entry.Name) {
			files = append(files, entry.Name)
		}
	}
	return files
}

// loadDocument reads and parses one file, degrading to nil on read errors so
// a single corrupt file never blocks discovery of its siblings.
func (e *Engine) loadDocument(path string) *vault.Document {
	raw, err := e.fs.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			e.logger.Warn("Document read failed during discovery", "path", path, "error", err)
		}
		return nil
	}
	return vault.Parse(path, raw)
}
