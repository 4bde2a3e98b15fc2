// Package main is the entry point for the promptvault CLI.
//
// The binary doubles as an MCP server (promptvault serve) and a local
// command-line client for the same resolution pipeline (resolve, suggest,
// list, tasks). Startup sequence:
//
// 1. Initialize the logging system
// 2. Parse the command line
// 3. Load configuration (or apply --vault overrides)
// 4. Run the selected command
package main

import (
	"os"

	"promptvault/internal/logging"
)

func main() {
	appLogger = logging.NewAppLogger()

	if err := rootCmd.Execute(); err != nil {
		appLogger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
