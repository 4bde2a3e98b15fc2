package discovery

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		expected  float64
	}{
		{"identical", "plan", "plan", 1.0},
		{"identical after normalization", "  Plan ", "plan", 1.0},
		{"shared word beats containment", "plan", "plan-outline", 0.6},
		{"containment only", "plan", "planning", 0.4},
		{"all words shared across separators", "daily note", "daily-note", 0.6},
		{"anagram hits character fallback", "abcd", "dcba", 0.5},
		{"no overlap", "xyz", "abc", 0},
		{"empty query", "", "plan", 0},
		{"empty candidate", "plan", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.candidate)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.query, tt.candidate, got, tt.expected)
			}
		})
	}
}

func TestScoreIsBounded(t *testing.T) {
	pairs := [][2]string{
		{"meeting notes", "meeting"},
		{"a", "aaaaaaaaaa"},
		{"standup", "weekly-standup-notes"},
		{"x-y_z", "z_y-x"},
	}

	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScoreSymmetricContainment(t *testing.T) {
	// Containment applies whichever string is the substring
	a := Score("meeting", "meet")
	b := Score("meet", "meeting")
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("Containment should score both directions equally: %v vs %v", a, b)
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"daily-note.md", "daily-note"},
		{"notes.markdown", "notes"},
		{"plain", "plain"},
		{"archive.tar.gz", "archive.tar"},
	}

	for _, tt := range tests {
		if got := Stem(tt.in); got != tt.expected {
			t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
