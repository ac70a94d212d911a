package tools

import (
	"context"
	"strings"

	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// QuestionTool handles the audit_question MCP tool.
type QuestionTool struct {
	registry *session.Registry
}

// NewQuestionTool creates a QuestionTool.
func NewQuestionTool(registry *session.Registry) *QuestionTool {
	return &QuestionTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_question.
func (t *QuestionTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_question",
		mcp.WithDescription(
			"Show the question currently awaiting an answer in an audit session. "+
				"Follow-up questions are always asked before the next primary question.",
		),
		sessionParam(),
	)
}

// Handle processes the audit_question tool call.
func (t *QuestionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireSession(req)
	if errResult != nil {
		return errResult, nil
	}

	var b strings.Builder
	err := t.registry.With(id, func(s *interview.State) error {
		nextStep(&b, s)
		return nil
	})
	if err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(strings.TrimPrefix(b.String(), "\n---\n\n")), nil
}
