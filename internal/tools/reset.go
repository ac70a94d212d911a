package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ResetTool handles the audit_reset MCP tool.
type ResetTool struct {
	registry *session.Registry
}

// NewResetTool creates a ResetTool.
func NewResetTool(registry *session.Registry) *ResetTool {
	return &ResetTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_reset.
func (t *ResetTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_reset",
		mcp.WithDescription(
			"Discard every answer of an audit session and restart it from the first question, "+
				"or close the session entirely with close=true. This cannot be undone: "+
				"export the session first if the answers matter.",
		),
		sessionParam(),
		mcp.WithBoolean("close",
			mcp.Description("Delete the session instead of restarting it (default: false)"),
		),
	)
}

// Handle processes the audit_reset tool call.
func (t *ResetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireSession(req)
	if errResult != nil {
		return errResult, nil
	}

	if boolArg(req, "close", false) {
		if err := t.registry.Delete(id); err != nil {
			return sessionFailure(id, err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Session `%s` closed.", id)), nil
	}

	if err := t.registry.Reset(id); err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Session `%s` restarted. Call `audit_question` for the first question.", id)), nil
}
