package prompt

import (
	"errors"
	"fmt"

	"promptvault/internal/discovery"
	"promptvault/internal/logging"
	"promptvault/internal/templater"
	"promptvault/internal/vault"
	"promptvault/internal/vaultfs"
)

// ResolveOptions control one resolution call.
type ResolveOptions struct {
	// SearchPaths overrides the configured vault roots for this call.
	SearchPaths []string

	// Strict turns missing required variables (and type mismatches) into a
	// fatal structured error instead of a partial, best-effort outcome.
	Strict bool

	// IncludeWikilinks is accepted for forward compatibility and currently
	// a no-op: wikilink graph resolution is out of scope.
	IncludeWikilinks bool

	// ProcessTemplater runs the date/file token pass before placeholder
	// substitution.
	ProcessTemplater bool
}

// ResolutionOutcome is the final payload of a resolution call, constructed
// fresh per call and never cached or mutated afterwards.
type ResolutionOutcome struct {
	Name       string
	Path       string
	Strategy   discovery.Strategy
	Confidence float64

	// Content is the processed body text.
	Content string

	// Variables maps each substituted variable to its resolved value.
	Variables map[string]string

	// Missing lists placeholder names left unresolved: no binding and no
	// default, deduplicated in first-seen order.
	Missing []string

	// MissingRequired lists declared required variables that had neither a
	// binding nor a spec default.
	MissingRequired []string

	// Errors holds aggregated type/options validation messages.
	Errors []string

	Valid    bool
	Document *vault.Document
}

// Resolver ties discovery, parsing, validation and substitution together.
// It is explicitly constructed and caller-owned; no module-level singletons.
type Resolver struct {
	fs     *vaultfs.VaultFS
	engine *discovery.Engine
	logger *logging.AppLogger
}

// NewResolver creates a resolver over the given filesystem and discovery
// engine.
func NewResolver(fs *vaultfs.VaultFS, engine *discovery.Engine, logger *logging.AppLogger) *Resolver {
	return &Resolver{
		fs:     fs,
		engine: engine,
		logger: logger,
	}
}

// Resolve locates the document for name, validates bindings against its
// declared variables, and substitutes placeholders in its body.
//
// Fatal failures (not found, access denied, and in strict mode missing or
// mistyped variables) surface as a structured *Error the caller can branch
// on by kind. Everything else degrades to a partial outcome with the
// relevant names reported in Missing/MissingRequired/Errors.
func (r *Resolver) Resolve(name string, bindings map[string]any, opts ResolveOptions) (*ResolutionOutcome, error) {
	if bindings == nil {
		bindings = map[string]any{}
	}

	result, err := r.engine.Discover(name, opts.SearchPaths)
	if err != nil {
		if errors.Is(err, vaultfs.ErrAccessDenied) {
			return nil, NewError(KindAccessDenied, err.Error())
		}
		return nil, notFoundError(name, r.engine.Suggest(name, opts.SearchPaths))
	}

	raw, err := r.fs.ReadFile(result.Path)
	if err != nil {
		if errors.Is(err, vaultfs.ErrAccessDenied) {
			return nil, NewError(KindAccessDenied, err.Error())
		}
		return nil, notFoundError(name, r.engine.Suggest(name, opts.SearchPaths))
	}

	doc := vault.Parse(result.Path, raw)
	specs := ExtractVariableSpecs(doc.Metadata)

	// Spec defaults satisfy required-ness: a variable is only missing when
	// it has neither a binding nor a declared default.
	merged := MergeDefaults(bindings, specs)
	validation := ValidateVariables(specs, merged)

	missingRequired := make([]string, 0, len(validation.Missing))
	for _, spec := range validation.Missing {
		missingRequired = append(missingRequired, spec.Name)
	}

	if opts.Strict {
		if len(missingRequired) > 0 {
			return nil, NewError(KindMissingRequiredVars,
				fmt.Sprintf("missing required variables for %q", name)).
				WithDetail("missing", missingRequired)
		}
		if len(validation.Errors) > 0 {
			return nil, NewError(KindInvalidVariableType,
				fmt.Sprintf("invalid variable values for %q", name)).
				WithDetail("errors", validation.Errors)
		}
	}

	body := doc.Body
	if opts.ProcessTemplater {
		body = templater.Process(body, templater.Context{Title: doc.Title()})
	}

	substituted := Substitute(body, merged)

	r.logger.Debug("Resolved prompt",
		"name", name,
		"path", result.Path,
		"strategy", result.Strategy,
		"used", len(substituted.Used),
		"missing", len(substituted.Missing),
	)

	return &ResolutionOutcome{
		Name:            name,
		Path:            result.Path,
		Strategy:        result.Strategy,
		Confidence:      result.Score,
		Content:         substituted.Content,
		Variables:       substituted.Used,
		Missing:         substituted.Missing,
		MissingRequired: missingRequired,
		Errors:          validation.Errors,
		Valid:           validation.Valid,
		Document:        doc,
	}, nil
}

// Suggest returns ranked alternative names for a failed resolution.
func (r *Resolver) Suggest(name string, searchPaths []string) []string {
	return r.engine.Suggest(name, searchPaths)
}
