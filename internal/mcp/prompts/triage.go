package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleTriageCapture implements the capture triage workflow.
func HandleTriageCapture(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		capture := ""
		host := ""
		if args != nil {
			capture = args["capture"]
			host = args["host"]
		}

		var sb strings.Builder

		sb.WriteString("# Triage a Traffic Capture\n\n")
		sb.WriteString("You are reviewing recorded HTTP traffic to explain what the client did and where it failed. ")
		sb.WriteString("Work from summaries first and pull raw text only for sessions that matter.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		if capture == "" {
			sb.WriteString("1. **Pick the capture** - call `saz_captures_list` and choose the archive\n")
		} else {
			fmt.Fprintf(&sb, "1. **Capture** - `%s`\n", capture)
		}
		sb.WriteString("2. **Map the traffic** - `saz_sessions_list` for counts and hosts\n")
		if host != "" {
			fmt.Fprintf(&sb, "   - Focus on `%s`: pass `filters: {host: %q}` to searches\n", host, host)
		}
		sb.WriteString("3. **Find failures** - search with `status_class: 4` and `status_class: 5`\n")
		sb.WriteString("   - Redirect chains show up as `status_class: 3`\n")
		sb.WriteString("4. **Read the evidence** - `saz_get_session` on the first failure and on the request just before it\n")
		sb.WriteString("5. **Summarize across sessions** - `saz_query_sessions` with `select(.status >= 400) | {index, status, url}`\n\n")

		sb.WriteString("## Output Format\n\n")
		sb.WriteString("- One line per host: session count and error count\n")
		sb.WriteString("- Failures in index order with status, URL and the likely cause from the raw response\n")
		sb.WriteString("- Open questions that need a fresh capture\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for triaging a capture",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
