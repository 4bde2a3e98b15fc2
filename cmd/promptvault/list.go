package main

import (
	"path/filepath"
	"strings"

	"promptvault/internal/vault"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the prompt documents in the vault",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs, _, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	count := 0
	for _, root := range fs.Roots() {
		entries, err := fs.ListDir(root)
		if err != nil {
			appLogger.Warn("Failed to list vault root", "root", root, "error", err)
			continue
		}

		for _, entry := range entries {
			if !entry.IsFile || !fs.IsAllowedFile(entry.Name) {
				continue
			}

			path := filepath.Join(root, entry.Name)
			raw, err := fs.ReadFile(path)
			if err != nil {
				continue
			}

			doc := vault.Parse(path, raw)
			name := strings.TrimSuffix(entry.Name, filepath.Ext(entry.Name))

			line := nameStyle.Render(name)
			if desc, ok := doc.Metadata["description"].(string); ok && desc != "" {
				line += "  " + dimStyle.Render(desc)
			}
			cmd.Println(line)
			if len(doc.Aliases) > 0 {
				cmd.Println(dimStyle.Render("  aliases: " + strings.Join(doc.Aliases, ", ")))
			}
			count++
		}
	}

	if count == 0 {
		cmd.Println("No prompt documents found.")
	}
	return nil
}
