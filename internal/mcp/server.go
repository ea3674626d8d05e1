package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"fittrack/internal/config"
	"fittrack/internal/library"
	"fittrack/internal/logging"
	"fittrack/internal/rehab"
	"fittrack/internal/safety"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server wires the domain packages into an MCP server instance.
type Server struct {
	config     *config.Config
	logger     *logging.Logger
	catalog    *library.Catalog
	store      *rehab.Store
	classifier *safety.Classifier
	mcpServer  *server.MCPServer
}

// NewServer creates an MCP server with all five tools registered. The
// catalog and protocol store must already be loaded; their load failures
// are startup failures, not something a tool call should ever see.
func NewServer(cfg *config.Config, catalog *library.Catalog, store *rehab.Store, logger *logging.Logger) *Server {
	s := &Server{
		config:     cfg,
		logger:     logger,
		catalog:    catalog,
		store:      store,
		classifier: safety.NewClassifier(catalog),
	}

	s.mcpServer = server.NewMCPServer(
		"fittrack",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)
	s.registerTools()

	return s
}

// registerTools binds each tool's definition and handler to the underlying
// mcp-go server.
func (s *Server) registerTools() {
	workoutTool := NewWorkoutTool(s.classifier, s.logger)
	s.mcpServer.AddTool(workoutTool.Definition(), workoutTool.Handle)

	hydrationTool := NewHydrationTool(s.logger)
	s.mcpServer.AddTool(hydrationTool.Definition(), hydrationTool.Handle)

	nutritionTool := NewNutritionTool(s.logger)
	s.mcpServer.AddTool(nutritionTool.Definition(), nutritionTool.Handle)

	libraryTool := NewLibraryTool(s.catalog, s.logger)
	s.mcpServer.AddTool(libraryTool.Definition(), libraryTool.Handle)

	rehabTool := NewRehabTool(s.store, s.logger)
	s.mcpServer.AddTool(rehabTool.Definition(), rehabTool.Handle)
}

// Start serves the MCP protocol over stdio until ctx is cancelled or stdin
// reaches EOF. The caller owns signal handling.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting MCP server",
		"version", Version,
		"exercises", s.catalog.Len(),
		"rehabConditions", len(s.store.Conditions()),
		"cardSources", len(s.config.Library.Sources),
	)

	stdioServer := server.NewStdioServer(s.mcpServer)
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	s.logger.Info("MCP server stopped")
	return nil
}

// serverInstructions tells connected assistants what the tools cover and
// how the safety model works.
const serverInstructions = `fittrack is a fitness and rehab rules engine for a lifter managing
AC joint arthritis, hyperhidrosis, and a history of shoulder rehab.

Tools:
- log_workout: acknowledge a training set and check the exercise against
  the AC joint safety tiers (safe / caution / avoid). Unsafe movements come
  back with safer alternatives from the same movement category.
- calculate_hydration: estimate session fluid loss and electrolyte needs.
  Pass the measured sweat rate when the user has one; it overrides the
  heuristic estimate.
- log_nutrition: acknowledge a meal and apply the late-meal guardrail
  (21:00 through 05:59). Meals are always accepted; the guardrail only
  warns.
- get_exercise_library: browse the curated exercise catalog, filterable by
  movement category or search term.
- get_rehab_protocol: phased rehab protocols for six conditions, whole
  protocol or a single phase.

Nothing is persisted between calls: every tool is a pure evaluation over
built-in reference data, so identical inputs give identical answers apart
from acknowledgment IDs. This server provides reference information, not
medical advice; defer to the user's physical therapist where they
conflict.`
