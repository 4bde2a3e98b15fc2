package main

import (
	"fmt"

	"promptvault/internal/config"
	"promptvault/internal/vaultfs"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [vault-dir...]",
	Short: "Create the initial configuration",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.VaultDirs = make([]string, 0, len(args))
	for _, dir := range args {
		cfg.VaultDirs = append(cfg.VaultDirs, vaultfs.ExpandPath(dir))
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	path, _ := config.ConfigPath()
	cmd.Printf("Configuration written to %s\n", path)
	return nil
}
