package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExportTool handles the audit_export MCP tool.
type ExportTool struct {
	registry *session.Registry
}

// NewExportTool creates an ExportTool.
func NewExportTool(registry *session.Registry) *ExportTool {
	return &ExportTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_export",
		mcp.WithDescription(
			"Export an audit session as a JSON snapshot (answers, observations, progress). "+
				"The snapshot can be restored later with audit_import or scored offline "+
				"with `flameo score`.",
		),
		sessionParam(),
	)
}

// Handle processes the audit_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireSession(req)
	if errResult != nil {
		return errResult, nil
	}

	var data []byte
	err := t.registry.With(id, func(s *interview.State) error {
		var err error
		data, err = interview.EncodeSnapshot(s)
		return err
	})
	if err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ─── ImportTool ─────────────────────────────────────────────────────────────

// ImportTool handles the audit_import MCP tool.
type ImportTool struct {
	registry *session.Registry
}

// NewImportTool creates an ImportTool.
func NewImportTool(registry *session.Registry) *ImportTool {
	return &ImportTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_import.
func (t *ImportTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_import",
		mcp.WithDescription(
			"Restore an audit from a JSON snapshot produced by audit_export. "+
				"Without session_id a new session is opened; with session_id that "+
				"session's state is replaced. A malformed snapshot changes nothing.",
		),
		mcp.WithString("snapshot",
			mcp.Required(),
			mcp.Description("The JSON snapshot"),
		),
		mcp.WithString("session_id",
			mcp.Description("Existing session to overwrite (optional)"),
		),
	)
}

// Handle processes the audit_import tool call.
func (t *ImportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("snapshot", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("'snapshot' is required"), nil
	}

	state, err := interview.DecodeSnapshot([]byte(raw))
	if errors.Is(err, interview.ErrMalformedSnapshot) {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid snapshot: %v", err)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	id := strings.TrimSpace(req.GetString("session_id", ""))
	if id == "" {
		id, err = t.registry.Adopt(state)
	} else {
		err = t.registry.Replace(id, state)
	}
	if err != nil {
		return sessionFailure(id, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Audit restored\n\n**Session:** `%s`\n", id)
	err = t.registry.With(id, func(s *interview.State) error {
		nextStep(&b, s)
		return nil
	})
	if err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(b.String()), nil
}
