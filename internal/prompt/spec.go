// Package prompt implements the prompt resolution pipeline: variable spec
// extraction from document metadata, validation of caller-supplied bindings,
// default merging and placeholder substitution, tied together by Resolver.
package prompt

import "sort"

// VarType is the declared type of a template variable.
type VarType string

const (
	TypeString  VarType = "string"
	TypeNumber  VarType = "number"
	TypeBoolean VarType = "boolean"
	TypeDate    VarType = "date"
)

// variableFields are the metadata keys checked for variable declarations,
// in priority order. The first one present wins.
var variableFields = []string{"prompt-vars", "variables", "vars"}

// VariableSpec describes one expected substitution variable, normalized from
// whichever declaration shape the document author used.
type VariableSpec struct {
	Name        string
	Type        VarType
	Required    bool
	Default     any
	Options     []any
	Description string
}

// ExtractVariableSpecs locates the variable-declaration field in the
// metadata and normalizes it into an ordered spec list.
//
// Three shapes are accepted: a list of plain names, a list of structured
// objects, and a name→spec mapping. Vault documents are authored by humans
// with inconsistent conventions, so extraction never fails: malformed
// declarations produce an empty or partial list.
func ExtractVariableSpecs(metadata map[string]any) []VariableSpec {
	var raw any
	for _, field := range variableFields {
		if v, ok := metadata[field]; ok {
			raw = v
			break
		}
	}
	if raw == nil {
		return []VariableSpec{}
	}

	switch decl := raw.(type) {
	case []any:
		specs := make([]VariableSpec, 0, len(decl))
		for _, item := range decl {
			switch entry := item.(type) {
			case string:
				if entry == "" {
					continue
				}
				specs = append(specs, VariableSpec{
					Name:     entry,
					Type:     TypeString,
					Required: true,
				})
			case map[string]any:
				name, _ := entry["name"].(string)
				if spec, ok := specFromObject(name, entry); ok {
					specs = append(specs, spec)
				}
			}
		}
		return specs

	case map[string]any:
		// YAML mappings decode unordered; sorted keys keep the list
		// deterministic.
		names := make([]string, 0, len(decl))
		for name := range decl {
			names = append(names, name)
		}
		sort.Strings(names)

		specs := make([]VariableSpec, 0, len(names))
		for _, name := range names {
			obj, _ := decl[name].(map[string]any)
			if spec, ok := specFromObject(name, obj); ok {
				specs = append(specs, spec)
			}
		}
		return specs

	default:
		return []VariableSpec{}
	}
}

// specFromObject normalizes one structured declaration. The name must be
// non-empty; type defaults to string, required defaults to true unless the
// object explicitly sets it false.
func specFromObject(name string, obj map[string]any) (VariableSpec, bool) {
	if name == "" {
		return VariableSpec{}, false
	}

	spec := VariableSpec{
		Name:     name,
		Type:     TypeString,
		Required: true,
	}
	if obj == nil {
		return spec, true
	}

	if t, ok := obj["type"].(string); ok {
		spec.Type = normalizeType(t)
	}
	if req, ok := obj["required"].(bool); ok && !req {
		spec.Required = false
	}
	if def, ok := obj["default"]; ok {
		spec.Default = def
	}
	if opts, ok := obj["options"].([]any); ok {
		spec.Options = opts
	}
	if desc, ok := obj["description"].(string); ok {
		spec.Description = desc
	}
	return spec, true
}

func normalizeType(t string) VarType {
	switch VarType(t) {
	case TypeNumber, TypeBoolean, TypeDate:
		return VarType(t)
	default:
		return TypeString
	}
}
