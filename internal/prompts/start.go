// Package prompts implements MCP prompt handlers for fire-safety audits.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the audit-start MCP prompt.
// It guides the AI through a complete audit interview.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("audit-start",
		mcp.WithPromptDescription(
			"Start a fire-safety audit of a building. The assistant interviews you "+
				"one question at a time, checks each answer, and ends with a risk "+
				"assessment and a prioritized action plan.",
		),
		mcp.WithArgument("building_name",
			mcp.ArgumentDescription("Name of the building or establishment to audit"),
		),
		mcp.WithArgument("language",
			mcp.ArgumentDescription("Language to talk to the user in. Default: français"),
		),
	)
}

// Handle processes the audit-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	building := ""
	language := "français"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["building_name"]; ok && name != "" {
			building = name
		}
		if l, ok := args["language"]; ok && l != "" {
			language = l
		}
	}

	first := "2. Ask me the first question exactly as returned\n"
	description := "Start fire-safety audit"
	if building != "" {
		first = fmt.Sprintf("2. The building is called '%s': submit that as the first answer with `audit_answer`\n", building)
		description = fmt.Sprintf("Start fire-safety audit: %s", building)
	}

	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want to run a fire-safety audit of my building. Talk to me in " + language + ".\n\n" +
						"Please:\n" +
						"1. Run `audit_start` and keep the returned session_id\n" +
						first +
						"3. Send each of my replies verbatim to `audit_answer`; never guess or reformulate figures\n" +
						"4. If a reply is rejected, explain the reason and ask again. Relay warnings and observations briefly\n" +
						"5. Optional questions can be skipped: tell me I can answer 'passer'\n" +
						"6. When all questions are handled, run `audit_complete`. If it reports inconsistencies, " +
						"ask me to confirm the figures, fix them with `audit_correct` and run it again\n" +
						"7. Present the final report and walk me through the priority actions",
				),
			},
		},
	}, nil
}
