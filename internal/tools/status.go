package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the audit_status MCP tool.
// It lists what has been collected so far in a session.
type StatusTool struct {
	registry *session.Registry
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(registry *session.Registry) *StatusTool {
	return &StatusTool{registry: registry}
}

// Definition returns the MCP tool definition for audit_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_status",
		mcp.WithDescription(
			"Show the state of an audit session: progress, recorded answers, "+
				"skipped questions, pending follow-ups and every observation so far.",
		),
		sessionParam(),
	)
}

// Handle processes the audit_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireSession(req)
	if errResult != nil {
		return errResult, nil
	}

	var b strings.Builder
	err := t.registry.With(id, func(s *interview.State) error {
		status := "in progress"
		if s.Complete() {
			status = "complete"
		}
		fmt.Fprintf(&b, "# Audit Status\n\n**Session:** `%s`\n**Status:** %s\n**%s**\n\n", id, status, progressLine(s))

		answers := s.Answers()
		b.WriteString("## Answers\n\n")
		if answers.Len() == 0 {
			b.WriteString("_None yet._\n")
		} else {
			b.WriteString("| Key | Value |\n|-----|-------|\n")
			for _, k := range answers.Keys() {
				v, _ := answers.Get(k)
				fmt.Fprintf(&b, "| `%s` | %v |\n", k, v)
			}
		}

		if skipped := s.Skipped(); len(skipped) > 0 {
			fmt.Fprintf(&b, "\n**Skipped:** %s\n", strings.Join(skipped, ", "))
		}
		if pending := s.Pending(); len(pending) > 0 {
			b.WriteString("\n## Pending follow-ups\n\n")
			for _, q := range pending {
				fmt.Fprintf(&b, "- `%s`: %s\n", q.Key, q.Text)
			}
		}
		formatInsights(&b, "Observations", s.Insights())
		return nil
	})
	if err != nil {
		return sessionFailure(id, err)
	}
	return mcp.NewToolResultText(b.String()), nil
}
