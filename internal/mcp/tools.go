package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"promptvault/internal/prompt"
	"promptvault/internal/tasks"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools wires every tool onto the MCP server instance.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("resolve_prompt",
		mcp.WithDescription("Resolve a prompt document by name, substitute template variables and return the processed content"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Prompt name, alias or approximate title")),
		mcp.WithObject("variables", mcp.Description("Variable bindings, name to value")),
		mcp.WithBoolean("strict", mcp.Description("Fail when required variables are missing instead of returning partial output")),
		mcp.WithBoolean("templater", mcp.Description("Run the date/file token pass before variable substitution")),
		mcp.WithBoolean("include_wikilinks", mcp.Description("Reserved; wikilink graph resolution is not implemented")),
	), s.handleResolvePrompt)

	s.mcpServer.AddTool(mcp.NewTool("list_prompts",
		mcp.WithDescription("List all prompt documents in the vault with their descriptions, aliases, tags and declared variables"),
	), s.handleListPrompts)

	s.mcpServer.AddTool(mcp.NewTool("suggest_prompts",
		mcp.WithDescription("Return ranked alternative prompt names for a name that failed to resolve"),
		mcp.WithString("name", mcp.Required(), mcp.Description("The name that could not be resolved")),
	), s.handleSuggestPrompts)

	s.mcpServer.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List the checklist items of a vault document"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Document name or alias")),
	), s.handleListTasks)

	s.mcpServer.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Toggle one checklist item of a vault document by line number"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Document name or alias")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Zero-based line number of the checklist item")),
	), s.handleToggleTask)

	s.mcpServer.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new document in the first vault root; refuses to overwrite existing files"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Filename for the new document")),
		mcp.WithString("content", mcp.Description("Initial document content")),
	), s.handleCreateNote)
}

type resolvePayload struct {
	Path            string            `json:"path"`
	Strategy        string            `json:"strategy"`
	Confidence      float64           `json:"confidence"`
	Content         string            `json:"content"`
	Variables       map[string]string `json:"variables"`
	Missing         []string          `json:"missing"`
	MissingRequired []string          `json:"missing_required,omitempty"`
	Errors          []string          `json:"errors,omitempty"`
	Valid           bool              `json:"valid"`
}

func (s *Server) handleResolvePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bindings, _ := request.GetArguments()["variables"].(map[string]any)

	outcome, err := s.resolver.Resolve(name, bindings, prompt.ResolveOptions{
		Strict:           request.GetBool("strict", false),
		ProcessTemplater: request.GetBool("templater", false),
		IncludeWikilinks: request.GetBool("include_wikilinks", false),
	})
	if err != nil {
		return structuredError(err), nil
	}

	return jsonResult(resolvePayload{
		Path:            outcome.Path,
		Strategy:        string(outcome.Strategy),
		Confidence:      outcome.Confidence,
		Content:         outcome.Content,
		Variables:       outcome.Variables,
		Missing:         outcome.Missing,
		MissingRequired: outcome.MissingRequired,
		Errors:          outcome.Errors,
		Valid:           outcome.Valid,
	})
}

func (s *Server) handleListPrompts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompts, err := s.listPrompts()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"prompts": prompts, "count": len(prompts)})
}

func (s *Server) handleSuggestPrompts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	suggestions := s.resolver.Suggest(name, nil)
	return jsonResult(map[string]any{"suggestions": suggestions})
}

func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.engine.Discover(name, nil)
	if err != nil {
		return structuredError(prompt.NewError(prompt.KindNotFound, err.Error())), nil
	}

	items, err := s.tracker.List(result.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"path":    result.Path,
		"tasks":   items,
		"summary": tasks.Summarize(items),
	})
}

func (s *Server) handleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	line, err := request.RequireInt("line")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.engine.Discover(name, nil)
	if err != nil {
		return structuredError(prompt.NewError(prompt.KindNotFound, err.Error())), nil
	}

	item, err := s.tracker.Toggle(result.Path, line)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{"path": result.Path, "task": item})
}

func (s *Server) handleCreateNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content := request.GetString("content", "")

	roots := s.fs.Roots()
	path, err := s.fs.CreateNote(roots[0], name, content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{"path": path})
}

// jsonResult marshals a payload into a text tool result.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// structuredError renders a resolution error as a JSON error payload so
// clients can branch on the kind instead of parsing message text.
func structuredError(err error) *mcp.CallToolResult {
	payload := map[string]any{"message": err.Error()}

	var re *prompt.Error
	if errors.As(err, &re) {
		payload["kind"] = string(re.Kind)
		if len(re.Detail) > 0 {
			payload["detail"] = re.Detail
		}
	}

	data, merr := json.Marshal(payload)
	if merr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}
