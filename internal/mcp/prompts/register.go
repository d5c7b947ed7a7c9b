package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "capture_tool_guide",
		Description: "Essential guide for the capture tools: search parameters, raw text limits, JQ fields and workflows.",
	}, HandleToolGuide(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "triage_capture",
		Description: "RECOMMENDED: Step-by-step triage of a capture to find and explain failed requests.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "capture",
				Description: "Capture file name (default: choose from saz_captures_list)",
				Required:    false,
			},
			{
				Name:        "host",
				Description: "Host to focus on; '*.example.com' includes subdomains",
				Required:    false,
			},
		},
	}, HandleTriageCapture(cfg))
}
