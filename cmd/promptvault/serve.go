package main

import (
	"github.com/spf13/cobra"

	"promptvault/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC and can be used with
Claude Desktop and other MCP-compatible AI assistants.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "promptvault": {
        "command": "/path/to/promptvault",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server := mcp.NewServer(cfg, appLogger)
	return server.Start()
}
