package discovery

import (
	"path/filepath"
	"strings"
)

// Score rates the similarity of a candidate name against the query in [0,1].
//
// Layers, best applicable wins:
//   - exact post-normalization equality: 1.0
//   - substring containment: 0.8 × (shorter length / longer length)
//   - shared-word overlap (words split on whitespace/hyphen/underscore):
//     0.6 × (matched word count / query word count)
//   - character-overlap ratio (multiset intersection ÷ longer length):
//     0.5 × ratio, only when the ratio exceeds 0.4
//
// Normalization is lowercasing plus whitespace trim; callers strip file
// extensions before scoring, so a string scored against itself is exactly 1.0.
func Score(query, candidate string) float64 {
	q := normalize(query)
	c := normalize(candidate)
	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return 1.0
	}

	score := 0.0
	if strings.Contains(c, q) {
		score = 0.8 * float64(len(q)) / float64(len(c))
	} else if strings.Contains(q, c) {
		score = 0.8 * float64(len(c)) / float64(len(q))
	}

	if wordScore := wordOverlap(q, c); wordScore > score {
		score = wordScore
	}
	if score > 0 {
		return score
	}

	if ratio := charOverlap(q, c); ratio > 0.4 {
		return 0.5 * ratio
	}
	return 0
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Stem strips the file extension from a name before scoring.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '_'
	})
}

func wordOverlap(q, c string) float64 {
	queryWords := splitWords(q)
	candidateWords := splitWords(c)
	if len(queryWords) == 0 || len(candidateWords) == 0 {
		return 0
	}

	inCandidate := make(map[string]bool, len(candidateWords))
	for _, w := range candidateWords {
		inCandidate[w] = true
	}

	matched := 0
	for _, w := range queryWords {
		if inCandidate[w] {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return 0.6 * float64(matched) / float64(len(queryWords))
}

// charOverlap computes the sorted-multiset intersection size divided by the
// longer string's length.
func charOverlap(q, c string) float64 {
	counts := map[rune]int{}
	for _, r := range q {
		counts[r]++
	}

	intersection := 0
	for _, r := range c {
		if counts[r] > 0 {
			counts[r]--
			intersection++
		}
	}

	longer := len([]rune(q))
	if lc := len([]rune(c)); lc > longer {
		longer = lc
	}
	if longer == 0 {
		return 0
	}
	return float64(intersection) / float64(longer)
}
