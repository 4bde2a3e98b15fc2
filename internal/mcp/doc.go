// Package mcp implements the Model Context Protocol (MCP) server for
// promptvault using the mcp-go library.
//
// The server exposes the prompt resolution pipeline and the thin task
// tooling to AI assistants through a standardized protocol: tools for
// resolving a prompt by name with variable bindings, listing and suggesting
// prompts, and reading or toggling document checklists.
//
// The implementation uses mcp-go for protocol handling and communicates via
// stdin/stdout using JSON-RPC 2.0 as specified by the MCP standard. All
// logging goes to stderr so the transport keeps stdout to itself.
package mcp
