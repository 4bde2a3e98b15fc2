package prompt

import (
	"fmt"
	"math"
	"time"
)

// dateLayouts are the formats accepted for date-typed variable values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ValidationResult aggregates every problem found in one pass so the caller
// receives the complete picture in a single response.
type ValidationResult struct {
	Valid   bool
	Missing []VariableSpec
	Errors  []string
}

// ValidateVariables checks bindings against the spec list.
//
// A required spec whose bound value is absent, nil or the empty string goes
// on the missing list and is not checked further. Optional absent variables
// are skipped. Present values are type-checked, then checked against the
// enumerated options when the spec declares any. Validation never
// short-circuits; validity requires both lists to be empty.
func ValidateVariables(specs []VariableSpec, bindings map[string]any) ValidationResult {
	result := ValidationResult{
		Missing: []VariableSpec{},
		Errors:  []string{},
	}

	for _, spec := range specs {
		value, bound := bindings[spec.Name]
		absent := !bound || value == nil || value == ""

		if absent {
			if spec.Required {
				result.Missing = append(result.Missing, spec)
			}
			continue
		}

		if err := checkType(spec, value); err != "" {
			result.Errors = append(result.Errors, err)
			continue
		}

		if len(spec.Options) > 0 && !matchesOption(value, spec.Options) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("variable %q: value %v is not one of the allowed options", spec.Name, value))
		}
	}

	result.Valid = len(result.Missing) == 0 && len(result.Errors) == 0
	return result
}

// checkType returns an error message, or "" when the value conforms.
func checkType(spec VariableSpec, value any) string {
	switch spec.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("variable %q: expected string, got %T", spec.Name, value)
		}
	case TypeNumber:
		f, ok := asNumber(value)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprintf("variable %q: expected finite number, got %v", spec.Name, value)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("variable %q: expected boolean, got %T", spec.Name, value)
		}
	case TypeDate:
		if !isDate(value) {
			return fmt.Sprintf("variable %q: expected a valid date, got %v", spec.Name, value)
		}
	}
	return ""
}

func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func isDate(value any) bool {
	switch d := value.(type) {
	case time.Time:
		return true
	case string:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, d); err == nil {
				return true
			}
		}
		return false
	default:
		_ = d
		return false
	}
}

// matchesOption compares on canonical string form so a YAML-sourced option
// and a JSON-sourced binding of the same value still match.
func matchesOption(value any, options []any) bool {
	have := FormatValue(value)
	for _, opt := range options {
		if FormatValue(opt) == have {
			return true
		}
	}
	return false
}
