package main

import (
	"promptvault/internal/tasks"

	"github.com/spf13/cobra"
)

var toggleLine int

var tasksCmd = &cobra.Command{
	Use:   "tasks [name]",
	Short: "Show or toggle the checklist of a vault document",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().IntVar(&toggleLine, "toggle", -1, "toggle the checklist item on this line")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs, engine, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := engine.Discover(args[0], nil)
	if err != nil {
		return err
	}

	tracker := tasks.NewTracker(fs, appLogger)

	if toggleLine >= 0 {
		item, err := tracker.Toggle(result.Path, toggleLine)
		if err != nil {
			return err
		}
		cmd.Printf("Toggled line %d: %s (done=%t)\n", item.Line, item.Text, item.Done)
		return nil
	}

	items, err := tracker.List(result.Path)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		cmd.Println("No checklist items.")
		return nil
	}

	for _, item := range items {
		mark := " "
		if item.Done {
			mark = "x"
		}
		cmd.Printf("%4d  [%s] %s\n", item.Line, mark, item.Text)
	}

	summary := tasks.Summarize(items)
	cmd.Printf("\n%d/%d done\n", summary.Done, summary.Total)
	return nil
}
