package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// AnswerTool handles the audit_answer MCP tool.
// It validates the user's reply to the current question and advances
// the interview when the reply is accepted.
type AnswerTool struct {
	registry *session.Registry
}

// NewAnswerTool creates an AnswerTool.
func NewAnswerTool(registry *session.Registry) *AnswerTool {
	return &AnswerTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_answer.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_answer",
		mcp.WithDescription(
			"Submit the user's reply to the current audit question, verbatim. "+
				"A rejected reply leaves the same question current: relay the reason and ask again. "+
				"An accepted reply may carry a warning, trigger observations and queue follow-up questions. "+
				"Optional questions accept 'aucun', 'passer' or 'n/a' to skip them.",
		),
		sessionParam(),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("The user's reply, as typed"),
		),
	)
}

// Handle processes the audit_answer tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireSession(req)
	if errResult != nil {
		return errResult, nil
	}
	answer := req.GetString("answer", "")
	if strings.TrimSpace(answer) == "" {
		return mcp.NewToolResultError("'answer' is required"), nil
	}

	var b strings.Builder
	err := t.registry.With(id, func(s *interview.State) error {
		out, err := s.Submit(answer)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "# Answer to `%s`\n\n", out.Question.Key)
		formatResult(&b, out.Result)
		formatInsights(&b, "New observations", out.Insights)
		if len(out.FollowUps) > 0 {
			fmt.Fprintf(&b, "\n%d follow-up question(s) queued.\n", len(out.FollowUps))
		}
		nextStep(&b, s)
		return nil
	})
	if err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(b.String()), nil
}
