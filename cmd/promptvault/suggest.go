package main

import (
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [name]",
	Short: "Print ranked alternative prompt names",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, engine, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	suggestions := engine.Suggest(args[0], nil)
	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, name := range suggestions {
		cmd.Println(name)
	}
	return nil
}
