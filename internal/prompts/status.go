package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the audit-status MCP prompt.
// It instructs the AI to summarize where an audit stands.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("audit-status",
		mcp.WithPromptDescription(
			"Check where an audit stands: answers collected, observations raised "+
				"and what is left to ask.",
		),
		mcp.WithArgument("session_id",
			mcp.ArgumentDescription("Audit session to inspect"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the audit-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	id := ""
	if args := req.Params.Arguments; args != nil {
		id = args["session_id"]
	}
	if id == "" {
		return nil, fmt.Errorf("session_id is required")
	}

	return &mcp.GetPromptResult{
		Description: "Fire-safety audit status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Please run `audit_status` with session_id='%s'.\n\n"+
						"Then:\n"+
						"1. Summarize the answers collected so far in a short table\n"+
						"2. List the observations by urgency, most urgent first\n"+
						"3. Tell me which question comes next, or run `audit_complete` if everything is answered",
					id,
				)),
			},
		},
	}, nil
}
