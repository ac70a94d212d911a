// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources that depend on them.
// No business logic lives here, only wiring.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HendryAvila/flameo/internal/config"
	"github.com/HendryAvila/flameo/internal/gate"
	"github.com/HendryAvila/flameo/internal/prompts"
	"github.com/HendryAvila/flameo/internal/report"
	"github.com/HendryAvila/flameo/internal/resources"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/HendryAvila/flameo/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// openStore is a package-level var to allow test injection.
var openStore = func(cfg session.StoreConfig) (session.Store, error) {
	return session.NewSQLiteStore(cfg)
}

// tool is the shape shared by every handler in internal/tools.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates and configures the MCP server with all tools, prompts and
// resources registered.
//
// The returned cleanup function closes the session store and must be
// called on shutdown. It is always non-nil and safe to call even if the
// store failed to open.
func New(cfg *config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	// --- Create shared dependencies ---

	renderer, err := report.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating report renderer: %w", err)
	}

	// Persistence is optional: if the store cannot be opened, sessions
	// live in memory only and the server keeps working.
	cleanup := noop
	var store session.Store
	if cfg.PersistSessions {
		st, err := openStore(session.StoreConfig{DataDir: cfg.DataDir})
		if err != nil {
			logger.Warn("session persistence disabled", "data_dir", cfg.DataDir, "error", err)
		} else {
			store = st
			cleanup = func() {
				if err := st.Close(); err != nil {
					logger.Warn("session store close", "error", err)
				}
			}
		}
	}

	registry := session.NewRegistry(session.Options{
		Store:       store,
		MaxSessions: cfg.MaxSessions,
		Logger:      logger,
	})
	consistency := gate.New(gate.DefaultConfig(), logger)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"flameo",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register audit tools ---

	for _, t := range []tool{
		tools.NewStartTool(registry),
		tools.NewQuestionTool(registry),
		tools.NewAnswerTool(registry),
		tools.NewCorrectTool(registry),
		tools.NewStatusTool(registry),
		tools.NewCompleteTool(registry, consistency, renderer),
		tools.NewExportTool(registry),
		tools.NewImportTool(registry),
		tools.NewResetTool(registry),
	} {
		s.AddTool(t.Definition(), t.Handle)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(renderer, registry)
	s.AddResource(resourceHandler.CatalogResource(), resourceHandler.HandleCatalog)
	s.AddResource(resourceHandler.SessionsResource(), resourceHandler.HandleSessions)

	logger.Debug("mcp server ready", "version", Version, "persisted", store != nil, "max_sessions", cfg.MaxSessions)
	return s, cleanup, nil
}

// noop is the default cleanup when no store is open.
func noop() {}

// serverInstructions tells the AI how to run an audit with Flaméo.
func serverInstructions() string {
	return `You have access to Flaméo, a fire-safety audit server for buildings.

## WHEN TO USE Flaméo

Use it when the user wants to assess the fire safety of a building, check
whether their equipment (extinguishers, smoke detectors, exits) is
sufficient, or prepare for a fire-safety inspection.

## HOW TO RUN AN AUDIT

1. Call audit_start. Keep the session_id: every other tool needs it.
2. Ask the returned question, in the user's language, ONE question at a time.
3. Send the user's reply VERBATIM to audit_answer. Never convert units,
   round figures or guess an answer the user did not give.
4. If the answer is rejected, explain the reason and ask the same question
   again. If it is accepted with a warning, mention the warning briefly.
5. Follow-up questions may be queued (kitchen suppression, fire treatment
   of wood, centralized alarm, security service). They are asked before
   the next primary question; just keep calling audit_answer.
6. Optional questions can be skipped with "passer", "aucun" or "n/a".
7. When no question is left, call audit_complete.

## INCONSISTENT DATA

audit_complete runs final consistency checks (room areas against building
size, occupancy density, emergency exits). When they fail, the answers are
kept: ask the user to confirm the figures, fix them with audit_correct,
then call audit_complete again.

## OTHER TOOLS

- audit_status: what has been collected so far, with observations
- audit_question: repeat the current question
- audit_export / audit_import: save a session as JSON and restore it
- audit_reset: restart or close a session

The resource flameo://catalog/questions lists every question.`
}
