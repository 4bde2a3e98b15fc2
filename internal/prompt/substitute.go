package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// placeholderPattern matches {{name}} and {{name:defaultLiteral}} tokens.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_-]*)(:[^{}]*)?\}\}`)

// SubstitutionResult reports the processed text, the variables actually
// substituted (name → resolved string form), and the placeholder names left
// unresolved.
type SubstitutionResult struct {
	Content string
	Used    map[string]string
	Missing []string
}

// Substitute resolves every placeholder in body against bindings in a single
// linear pass.
//
// A name present in bindings substitutes its string form, even when the
// value is falsy but defined. Otherwise an inline default literal is used
// and recorded as the resolved value. Otherwise the placeholder text is left
// completely unmodified and the name lands on the missing list, deduplicated
// in first-seen order. Substituted values are never re-scanned; nested
// expansion is intentionally unsupported.
func Substitute(body string, bindings map[string]any) SubstitutionResult {
	used := map[string]string{}
	missing := []string{}
	seen := map[string]bool{}

	content := placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		inner := match[2 : len(match)-2]

		name := inner
		defaultLiteral := ""
		hasDefault := false
		if idx := strings.Index(inner, ":"); idx >= 0 {
			name = inner[:idx]
			defaultLiteral = inner[idx+1:]
			hasDefault = true
		}

		if value, ok := bindings[name]; ok {
			resolved := FormatValue(value)
			used[name] = resolved
			return resolved
		}

		if hasDefault {
			used[name] = defaultLiteral
			return defaultLiteral
		}

		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})

	return SubstitutionResult{
		Content: content,
		Used:    used,
		Missing: missing,
	}
}

// MergeDefaults injects spec-declared defaults for every name the caller did
// not supply. Caller-supplied bindings always take precedence. The input map
// is not modified.
func MergeDefaults(bindings map[string]any, specs []VariableSpec) map[string]any {
	merged := make(map[string]any, len(bindings)+len(specs))
	for name, value := range bindings {
		merged[name] = value
	}
	for _, spec := range specs {
		if spec.Default == nil {
			continue
		}
		if _, ok := merged[spec.Name]; !ok {
			merged[spec.Name] = spec.Default
		}
	}
	return merged
}

// FormatValue renders a binding value into its substitution string form.
func FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format("2006-01-02")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
