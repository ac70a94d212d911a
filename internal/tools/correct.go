package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// CorrectTool handles the audit_correct MCP tool.
type CorrectTool struct {
	registry *session.Registry
}

// NewCorrectTool creates a CorrectTool.
func NewCorrectTool(registry *session.Registry) *CorrectTool {
	return &CorrectTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_correct.
func (t *CorrectTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_correct",
		mcp.WithDescription(
			"Replace the answer to a question that was already answered or skipped. "+
				"Use it when audit_complete reports an inconsistency, or when the user "+
				"corrects an earlier reply. The current question does not change.",
		),
		sessionParam(),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Question key, e.g. 'emergencyExits' or 'buildingSize'"),
		),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("The corrected reply, as typed"),
		),
	)
}

// Handle processes the audit_correct tool call.
func (t *CorrectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireSession(req)
	if errResult != nil {
		return errResult, nil
	}
	key := strings.TrimSpace(req.GetString("key", ""))
	if key == "" {
		return mcp.NewToolResultError("'key' is required"), nil
	}
	answer := req.GetString("answer", "")
	if strings.TrimSpace(answer) == "" {
		return mcp.NewToolResultError("'answer' is required"), nil
	}

	var b strings.Builder
	err := t.registry.With(id, func(s *interview.State) error {
		res, found, err := s.Correct(key, answer)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "# Correction of `%s`\n\n", key)
		formatResult(&b, res)
		formatInsights(&b, "New observations", found)
		nextStep(&b, s)
		return nil
	})
	if err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(b.String()), nil
}
