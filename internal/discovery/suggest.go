package discovery

import (
	"path/filepath"
	"sort"
)

// aliasSuggestionWeight de-prioritizes alias names against filename matches
// in ranked suggestions.
const aliasSuggestionWeight = 0.9

type suggestion struct {
	name  string
	score float64
}

// Suggest produces ranked "did you mean" alternatives for a name that failed
// to resolve, applying the fuzzy scorer across all candidate directories
// combined. Alias names participate at 90% of their raw score. The top-N
// names above the content/suggestion threshold are returned, best first.
func (e *Engine) Suggest(name string, searchPaths []string) []string {
	dirs := searchPaths
	if len(dirs) == 0 {
		dirs = e.roots
	}

	best := map[string]float64{}
	order := []string{}

	record := func(candidate string, score float64) {
		if score <= e.opts.ContentMinScore {
			return
		}
		if prev, ok := best[candidate]; !ok {
			best[candidate] = score
			order = append(order, candidate)
		} else if score > prev {
			best[candidate] = score
		}
	}

	for _, dir := range dirs {
		if !e.fs.WithinRoots(dir) {
			continue
		}
		for _, file := range e.listFiles(dir) {
			stem := Stem(file)
			record(stem, Score(name, stem))

			doc := e.loadDocument(filepath.Join(dir, file))
			if doc == nil {
				continue
			}
			for _, alias := range doc.Aliases {
				record(alias, Score(name, alias)*aliasSuggestionWeight)
			}
		}
	}

	ranked := make([]suggestion, 0, len(order))
	for _, candidate := range order {
		ranked = append(ranked, suggestion{name: candidate, score: best[candidate]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	limit := e.opts.MaxSuggestions
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}

	names := make([]string, 0, limit)
	for _, s := range ranked[:limit] {
		names = append(names, s.name)
	}
	return names
}
