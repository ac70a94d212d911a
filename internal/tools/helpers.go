// Package tools implements the MCP tool handlers that drive an audit.
//
// Each tool is a struct holding its dependencies (the session registry,
// the report renderer, the consistency gate), a Definition() returning
// the mcp.Tool schema and a Handle() processing the call. Answer
// rejections and gate failures are reported as tool errors so the model
// can re-ask; only unexpected internal failures return a Go error.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/HendryAvila/flameo/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// sessionParam is shared by every tool bound to an existing session.
func sessionParam() mcp.ToolOption {
	return mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Session identifier returned by audit_start or audit_import"),
	)
}

// requireSession reads session_id, returning a tool error when missing.
func requireSession(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	id := strings.TrimSpace(req.GetString("session_id", ""))
	if id == "" {
		return "", mcp.NewToolResultError("'session_id' is required")
	}
	return id, nil
}

// sessionFailure turns a registry error into a tool result. Errors the
// caller can fix become tool errors; anything else is returned as is.
func sessionFailure(id string, err error) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("Session %q not found. Start one with `audit_start`.", id)), nil
	case errors.Is(err, session.ErrLimit):
		return mcp.NewToolResultError(fmt.Sprintf("Cannot open a new session: %v", err)), nil
	case errors.Is(err, interview.ErrComplete):
		return mcp.NewToolResultError("The interview is complete. Call `audit_complete` to get the assessment."), nil
	case errors.Is(err, interview.ErrUnknownQuestion), errors.Is(err, interview.ErrNotAnswered):
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, fmt.Errorf("session %s: %w", id, err)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// formatQuestion renders a question for the model to relay.
func formatQuestion(b *strings.Builder, q audit.AuditQuestion) {
	kind := "question"
	if q.FollowUp {
		kind = "follow-up question"
	}
	fmt.Fprintf(b, "**Next %s** (`%s`, %s", kind, q.Key, q.ValidationType)
	if !q.Required {
		b.WriteString(", optional")
	}
	b.WriteString(")\n\n")
	fmt.Fprintf(b, "> %s\n", q.Text)

	minValue, hasMin, maxValue, hasMax := q.Bounds()
	switch {
	case hasMin && hasMax:
		fmt.Fprintf(b, "\nRange: %g to %g %s\n", minValue, maxValue, q.Unit)
	case hasMin:
		fmt.Fprintf(b, "\nMinimum: %g %s\n", minValue, q.Unit)
	}
	if len(q.AllowedValues) > 0 {
		fmt.Fprintf(b, "\nAccepted values: %s\n", strings.Join(q.AllowedValues, ", "))
	}
}

// formatResult renders the validation outcome of one answer.
func formatResult(b *strings.Builder, res validate.Result) {
	switch {
	case res.Outcome == validate.Rejected:
		fmt.Fprintf(b, "❌ **Rejected:** %s\n", res.Reason)
	case res.Skipped():
		b.WriteString("⏭️ **Skipped** (optional question)\n")
	case res.Outcome == validate.AcceptedWithWarning:
		fmt.Fprintf(b, "⚠️ **Accepted with warning:** `%v`\n\n%s\n", res.Value, res.Warning)
	default:
		fmt.Fprintf(b, "✅ **Accepted:** `%v`\n", res.Value)
	}
}

// formatInsights renders insights under the given heading.
func formatInsights(b *strings.Builder, heading string, insights []audit.ContextualInsight) {
	if len(insights) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, in := range insights {
		fmt.Fprintf(b, "- **[%s] %s**: %s", in.Urgency, in.InsightType, in.Message)
		if len(in.RelatedNorms) > 0 {
			fmt.Fprintf(b, " _(%s)_", strings.Join(in.RelatedNorms, "; "))
		}
		b.WriteString("\n")
	}
}

// progressLine renders "Progress: 4/20 primary questions".
func progressLine(s *interview.State) string {
	done, total := s.Progress()
	line := fmt.Sprintf("Progress: %d/%d primary questions", done, total)
	if n := len(s.Pending()); n > 0 {
		line += fmt.Sprintf(", %d follow-up(s) pending", n)
	}
	return line
}

// nextStep renders the current question of s, or the completion hint.
func nextStep(b *strings.Builder, s *interview.State) {
	b.WriteString("\n---\n\n")
	if q, ok := s.CurrentQuestion(); ok {
		formatQuestion(b, q)
		fmt.Fprintf(b, "\n_%s_\n", progressLine(s))
		return
	}
	b.WriteString("🏁 All questions are handled. Call `audit_complete` to run the consistency checks and get the assessment.\n")
}
