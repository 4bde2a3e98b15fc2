package main

import (
	"fmt"

	"promptvault/internal/config"
	"promptvault/internal/discovery"
	"promptvault/internal/logging"
	"promptvault/internal/prompt"
	"promptvault/internal/vaultfs"

	"github.com/spf13/cobra"
)

var (
	appLogger  *logging.AppLogger
	vaultFlags []string
)

var rootCmd = &cobra.Command{
	Use:   "promptvault",
	Short: "Prompt discovery and templating over a local knowledge vault",
	Long: `Promptvault layers prompt discovery, variable templating and checklist
tracking over a local vault of markdown documents (an Obsidian-style
folder tree).

Run "promptvault serve" to expose the vault to AI assistants over the
Model Context Protocol, or use the resolve/suggest/list/tasks commands
directly from the shell.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&vaultFlags, "vault", nil,
		"vault root directory (repeatable, overrides the configured roots)")
}

// loadConfig loads the user configuration and applies --vault overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if len(vaultFlags) == 0 {
			return nil, fmt.Errorf("no configuration found; create one with 'promptvault init' or pass --vault: %w", err)
		}
		def := config.DefaultConfig()
		cfg = &def
	}

	if len(vaultFlags) > 0 {
		cfg.VaultDirs = vaultFlags
	}
	if len(cfg.VaultDirs) == 0 {
		return nil, fmt.Errorf("no vault directories configured")
	}
	return cfg, nil
}

// buildPipeline constructs the filesystem, engine and resolver for CLI use.
func buildPipeline(cfg *config.Config) (*vaultfs.VaultFS, *discovery.Engine, *prompt.Resolver, error) {
	fs, err := vaultfs.New(cfg.VaultDirs, cfg.Extensions, appLogger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open vault: %w", err)
	}

	engine := discovery.NewEngine(fs, fs.Roots(), discovery.Options{
		FuzzyMinScore:   cfg.FuzzyMinScore,
		ContentMinScore: cfg.ContentMinScore,
		MaxSuggestions:  cfg.MaxSuggestions,
	}, appLogger)

	return fs, engine, prompt.NewResolver(fs, engine, appLogger), nil
}
