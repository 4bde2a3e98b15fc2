package prompt

import (
	"reflect"
	"testing"
)

func TestExtractVariableSpecsNameList(t *testing.T) {
	metadata := map[string]any{
		"prompt-vars": []any{"topic", "audience"},
	}

	specs := ExtractVariableSpecs(metadata)

	if len(specs) != 2 {
		t.Fatalf("Expected 2 specs, got %d", len(specs))
	}
	for i, name := range []string{"topic", "audience"} {
		if specs[i].Name != name {
			t.Errorf("Spec %d name = %q, want %q", i, specs[i].Name, name)
		}
		if specs[i].Type != TypeString {
			t.Errorf("Plain name should default to string type, got %v", specs[i].Type)
		}
		if !specs[i].Required {
			t.Errorf("Plain name should default to required")
		}
	}
}

func TestExtractVariableSpecsObjectList(t *testing.T) {
	metadata := map[string]any{
		"variables": []any{
			map[string]any{
				"name":        "count",
				"type":        "number",
				"required":    false,
				"default":     3,
				"description": "how many items",
			},
			map[string]any{
				"name":    "tone",
				"options": []any{"formal", "casual"},
			},
		},
	}

	specs := ExtractVariableSpecs(metadata)

	if len(specs) != 2 {
		t.Fatalf("Expected 2 specs, got %d", len(specs))
	}

	count := specs[0]
	if count.Name != "count" || count.Type != TypeNumber || count.Required {
		t.Errorf("Unexpected count spec: %+v", count)
	}
	if count.Default != 3 {
		t.Errorf("Expected default 3, got %v", count.Default)
	}
	if count.Description != "how many items" {
		t.Errorf("Expected description, got %q", count.Description)
	}

	tone := specs[1]
	if tone.Type != TypeString || !tone.Required {
		t.Errorf("Object without type/required should default to required string: %+v", tone)
	}
	if !reflect.DeepEqual(tone.Options, []any{"formal", "casual"}) {
		t.Errorf("Expected options preserved, got %v", tone.Options)
	}
}

func TestExtractVariableSpecsMapping(t *testing.T) {
	metadata := map[string]any{
		"vars": map[string]any{
			"zeta":  map[string]any{"type": "boolean", "required": false},
			"alpha": map[string]any{"type": "date"},
		},
	}

	specs := ExtractVariableSpecs(metadata)

	if len(specs) != 2 {
		t.Fatalf("Expected 2 specs, got %d", len(specs))
	}
	// Mapping declarations come back in sorted name order
	if specs[0].Name != "alpha" || specs[1].Name != "zeta" {
		t.Errorf("Expected sorted order [alpha zeta], got [%s %s]", specs[0].Name, specs[1].Name)
	}
	if specs[0].Type != TypeDate {
		t.Errorf("Expected alpha to be date, got %v", specs[0].Type)
	}
	if specs[1].Type != TypeBoolean || specs[1].Required {
		t.Errorf("Unexpected zeta spec: %+v", specs[1])
	}
}

func TestExtractVariableSpecsFieldPriority(t *testing.T) {
	metadata := map[string]any{
		"prompt-vars": []any{"winner"},
		"variables":   []any{"loser"},
		"vars":        []any{"also-loser"},
	}

	specs := ExtractVariableSpecs(metadata)

	if len(specs) != 1 || specs[0].Name != "winner" {
		t.Errorf("prompt-vars should take priority, got %+v", specs)
	}
}

func TestExtractVariableSpecsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		expected int
	}{
		{"no declaration field", map[string]any{"title": "x"}, 0},
		{"scalar declaration", map[string]any{"vars": 42}, 0},
		{"empty list", map[string]any{"vars": []any{}}, 0},
		{"empty string name skipped", map[string]any{"vars": []any{""}}, 0},
		{"object without name skipped", map[string]any{"vars": []any{map[string]any{"type": "number"}}}, 0},
		{"non-string non-object items skipped", map[string]any{"vars": []any{7, true, "kept"}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := ExtractVariableSpecs(tt.metadata)
			if len(specs) != tt.expected {
				t.Errorf("Expected %d specs, got %d (%+v)", tt.expected, len(specs), specs)
			}
		})
	}
}

func TestNormalizeTypeUnknownFallsBackToString(t *testing.T) {
	metadata := map[string]any{
		"vars": []any{map[string]any{"name": "x", "type": "timestamp"}},
	}

	specs := ExtractVariableSpecs(metadata)
	if len(specs) != 1 || specs[0].Type != TypeString {
		t.Errorf("Unknown type should normalize to string, got %+v", specs)
	}
}
