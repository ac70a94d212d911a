package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/flameo/internal/gate"
	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/report"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

var timeNow = time.Now

// CompleteTool handles the audit_complete MCP tool.
// It runs the consistency gate, scores the answers and renders the
// final report.
type CompleteTool struct {
	registry *session.Registry
	gate     *gate.Gate
	renderer report.Renderer
}

// NewCompleteTool creates a CompleteTool.
func NewCompleteTool(registry *session.Registry, g *gate.Gate, renderer report.Renderer) *CompleteTool {
	return &CompleteTool{registry: registry, gate: g, renderer: renderer}
}

// Definition returns the MCP tool definition for audit_complete.
func (t *CompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_complete",
		mcp.WithDescription(
			"Finish an audit whose questions are all handled. Runs the final consistency checks; "+
				"if the data is inconsistent the reasons are returned and the answers are kept, so "+
				"fix them with audit_correct and call this tool again. Otherwise returns the risk "+
				"assessment: compliance score, risk levels, equipment adequacy and priority actions.",
		),
		sessionParam(),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum("markdown", "json"),
			mcp.DefaultString("markdown"),
		),
	)
}

// Handle processes the audit_complete tool call.
func (t *CompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireSession(req)
	if errResult != nil {
		return errResult, nil
	}
	format := req.GetString("format", "markdown")
	if format != "markdown" && format != "json" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: use 'markdown' or 'json'", format)), nil
	}

	var data report.FinalData
	err := t.registry.With(id, func(s *interview.State) error {
		var err error
		data, err = report.Assess(s, t.gate, timeNow())
		return err
	})

	var fatal *gate.FatalError
	switch {
	case errors.As(err, &fatal):
		return mcp.NewToolResultError(inconsistencyMessage(fatal)), nil
	case errors.Is(err, report.ErrIncomplete):
		return mcp.NewToolResultError(fmt.Sprintf("Cannot score yet: %v. Keep asking with `audit_question`.", err)), nil
	case err != nil:
		return sessionFailure(id, err)
	}

	if format == "json" {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding assessment: %w", err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}

	out, err := t.renderer.Render(report.Final, data)
	if err != nil {
		return nil, fmt.Errorf("rendering final report: %w", err)
	}
	return mcp.NewToolResultText(out), nil
}

func inconsistencyMessage(fatal *gate.FatalError) string {
	var b strings.Builder
	b.WriteString("The answers are inconsistent and cannot be scored:\n\n")
	for _, v := range fatal.Violations {
		fmt.Fprintf(&b, "- %s (`%s`)\n", v.Reason, v.Type)
	}
	b.WriteString("\nAll answers are kept. Ask the user to confirm the figures, fix them with `audit_correct`, then call `audit_complete` again.")
	return b.String()
}
