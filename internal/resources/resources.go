// Package resources implements MCP resource handlers for audits.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (flameo://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/flameo/internal/report"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	CatalogURI  = "flameo://catalog/questions"
	SessionsURI = "flameo://sessions"
)

// Handler manages audit resource endpoints.
type Handler struct {
	renderer report.Renderer
	registry *session.Registry
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(renderer report.Renderer, registry *session.Registry) *Handler {
	return &Handler{renderer: renderer, registry: registry}
}

// CatalogResource returns the MCP resource definition for the questionnaire.
func (h *Handler) CatalogResource() mcp.Resource {
	return mcp.NewResource(
		CatalogURI,
		"Audit questionnaire",
		mcp.WithResourceDescription("Every primary and follow-up question of the fire-safety audit, in order"),
		mcp.WithMIMEType("text/markdown"),
	)
}

// HandleCatalog renders the questionnaire as markdown.
func (h *Handler) HandleCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := h.renderer.Render(report.Catalog, report.NewCatalogData())
	if err != nil {
		return nil, fmt.Errorf("rendering catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		},
	}, nil
}

// SessionsResource returns the MCP resource definition for open sessions.
func (h *Handler) SessionsResource() mcp.Resource {
	return mcp.NewResource(
		SessionsURI,
		"Open audit sessions",
		mcp.WithResourceDescription("Identifiers of the audit sessions currently held by the server"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSessions lists the open session ids as JSON.
func (h *Handler) HandleSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(map[string]any{"sessions": h.registry.IDs()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sessions: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
