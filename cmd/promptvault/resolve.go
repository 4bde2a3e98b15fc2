package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"promptvault/internal/prompt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	resolveVars      []string
	resolveStrict    bool
	resolveTemplater bool
	resolveRender    bool
	resolveJSON      bool
)

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

var resolveCmd = &cobra.Command{
	Use:   "resolve [name]",
	Short: "Resolve a prompt and print the processed content",
	Long: `Resolves a prompt document by name (exact, alias, fuzzy or content
match), substitutes {{variable}} placeholders against the given bindings
and prints the processed body.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringArrayVar(&resolveVars, "var", nil, "variable binding as name=value (repeatable)")
	resolveCmd.Flags().BoolVar(&resolveStrict, "strict", false, "fail on missing required variables")
	resolveCmd.Flags().BoolVar(&resolveTemplater, "templater", false, "run the date/file token pass before substitution")
	resolveCmd.Flags().BoolVar(&resolveRender, "render", false, "render the result as styled markdown")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output the full resolution outcome as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, _, resolver, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	bindings, err := parseVarFlags(resolveVars)
	if err != nil {
		return err
	}

	outcome, err := resolver.Resolve(args[0], bindings, prompt.ResolveOptions{
		Strict:           resolveStrict,
		ProcessTemplater: resolveTemplater,
	})
	if err != nil {
		var re *prompt.Error
		if errors.As(err, &re) && re.Kind == prompt.KindNotFound {
			if suggestions, ok := re.Detail["suggestions"].([]string); ok && len(suggestions) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(
					"Did you mean: "+strings.Join(suggestions, ", ")))
			}
		}
		return err
	}

	if resolveJSON {
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal outcome: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(outcome.Missing) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(
			"Unresolved variables: "+strings.Join(outcome.Missing, ", ")))
	}

	if resolveRender {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		rendered, err := renderer.Render(outcome.Content)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		cmd.Print(rendered)
		return nil
	}

	cmd.Println(outcome.Content)
	return nil
}

// parseVarFlags converts repeated name=value flags into bindings. Values
// that read as booleans or numbers are coerced so typed variable specs can
// validate them.
func parseVarFlags(flags []string) (map[string]any, error) {
	bindings := map[string]any{}
	for _, flag := range flags {
		name, value, found := strings.Cut(flag, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", flag)
		}

		switch {
		case value == "true" || value == "false":
			bindings[name] = value == "true"
		default:
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				bindings[name] = n
			} else {
				bindings[name] = value
			}
		}
	}
	return bindings, nil
}
