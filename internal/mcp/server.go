package mcp

import (
	"fmt"

	"promptvault/internal/config"
	"promptvault/internal/discovery"
	"promptvault/internal/logging"
	"promptvault/internal/prompt"
	"promptvault/internal/tasks"
	"promptvault/internal/vaultfs"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server wires the vault filesystem, discovery engine, resolver and task
// tracker into an MCP server instance.
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	fs        *vaultfs.VaultFS
	engine    *discovery.Engine
	resolver  *prompt.Resolver
	tracker   *tasks.Tracker
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// Start initializes components, registers tools and serves over stdio until
// the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	if err := s.initComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	s.mcpServer = server.NewMCPServer(
		"promptvault",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication",
		"vaultDirs", s.config.VaultDirs)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the MCP server.
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// The mcp-go server handles cleanup when the stdio transport closes.
	return nil
}

// initComponents builds the filesystem, discovery engine, resolver and
// tracker from configuration. Exported indirectly for tests via
// InitializeComponents.
func (s *Server) initComponents() error {
	fs, err := vaultfs.New(s.config.VaultDirs, s.config.Extensions, s.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vault filesystem: %w", err)
	}

	engine := discovery.NewEngine(fs, fs.Roots(), discovery.Options{
		FuzzyMinScore:   s.config.FuzzyMinScore,
		ContentMinScore: s.config.ContentMinScore,
		MaxSuggestions:  s.config.MaxSuggestions,
	}, s.logger)

	s.fs = fs
	s.engine = engine
	s.resolver = prompt.NewResolver(fs, engine, s.logger)
	s.tracker = tasks.NewTracker(fs, s.logger)

	if s.config.EnableCache {
		// Declared in configuration but not exercised: documents are read
		// fresh from storage on every call.
		s.logger.Warn("enable_cache is set but caching is not implemented")
	}
	return nil
}

// InitializeComponents is a public method for testing purposes.
// It initializes components without starting the stdio transport.
func (s *Server) InitializeComponents() error {
	return s.initComponents()
}

func serverInstructions() string {
	return `Promptvault serves prompt templates and checklists from a local
knowledge vault of markdown documents.

Use resolve_prompt to fetch a prompt by name with variable bindings; names
are matched exactly first, then by frontmatter aliases, then fuzzily, then
by content. If resolution fails, suggest_prompts returns ranked
alternatives. list_prompts enumerates everything available, including each
prompt's declared variables, so call it when unsure what exists.

Prompts declare variables in frontmatter; required variables without a
default must be supplied in the "variables" argument. Set "strict" to fail
fast instead of receiving partial output with a missing list.`
}
