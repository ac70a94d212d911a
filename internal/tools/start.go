package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// StartTool handles the audit_start MCP tool.
// It opens a new interview and returns its first question.
type StartTool struct {
	registry *session.Registry
}

// NewStartTool creates a StartTool.
func NewStartTool(registry *session.Registry) *StartTool {
	return &StartTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_start.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_start",
		mcp.WithDescription(
			"Start a new fire-safety audit interview. Returns a session_id that every "+
				"other audit_* tool needs, and the first question to ask the user. "+
				"Ask the questions one at a time and submit each reply with audit_answer.",
		),
	)
}

// Handle processes the audit_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := t.registry.Create()
	if err != nil {
		return sessionFailure("", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Audit started\n\n**Session:** `%s`\n", id)
	err = t.registry.With(id, func(s *interview.State) error {
		nextStep(&b, s)
		return nil
	})
	if err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(b.String()), nil
}
