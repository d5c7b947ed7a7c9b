package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleToolGuide serves the tool usage guide.
func HandleToolGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Capture Tool Guide\n\n")
		fmt.Fprintf(&sb, "Captures are `.saz` archives under `%s`. Pass names relative to that directory; paths outside it are refused unless SAZ_ALLOW_EXTERNAL_PATHS is set.\n", cfg.CaptureDir)

		// --- Search: Parameter Decision Table ---
		sb.WriteString("\n## Search: Parameter Decision Table\n\n")
		sb.WriteString("| Goal | Parameter | Example |\n")
		sb.WriteString("|------|-----------|--------|\n")
		sb.WriteString("| Find sessions by URL words | `query` | `query: \"api users\"` |\n")
		sb.WriteString("| Restrict to a host and its subdomains | `filters.host` | `host: \"*.example.com\"` |\n")
		sb.WriteString("| Failures only | `filters.status_class` | `status_class: 5` |\n")
		sb.WriteString("| Large responses | `filters.min_body_length` | `min_body_length: 100000` |\n")
		sb.WriteString("| Text anywhere in raw request/response | `filters.text_contains` | `text_contains: \"set-cookie\"` |\n")

		sb.WriteString("\n**Key rules**:\n")
		sb.WriteString("- `query` matches URL tokens only (host parts, path segments, query keys); all terms must match\n")
		sb.WriteString("- `text_contains` scans raw text and is slower on big captures; combine it with host/status filters\n")
		sb.WriteString("- Check `matched_in` on results to see where each match came from (url/request/response)\n")

		// --- Raw text ---
		sb.WriteString("\n## Raw Text\n")
		fmt.Fprintf(&sb, "- `saz_get_session` truncates each side to %d bytes by default; raise `max_bytes` or read the `saz://session/...` resource for the full record\n", cfg.MaxToolBytes)
		sb.WriteString("- Use `summary_only: true` when you only need status, URL and sizes\n")
		sb.WriteString("- `body_length` is the declared Content-Length, 0 when the header is absent\n")

		// --- Workflows ---
		sb.WriteString("\n## Recommended Workflows\n")
		sb.WriteString("\n### Triage a Capture\n")
		sb.WriteString("1. `saz_captures_list` to find the archive\n")
		fmt.Fprintf(&sb, "2. `saz_sessions_list(capture)` pages %d sessions at a time and lists hosts\n", cfg.DefaultListMax)
		sb.WriteString("3. `saz_search_sessions(capture, filters: {status_class: 4})` and `{status_class: 5}` for failures\n")
		sb.WriteString("4. `saz_get_session(capture, index)` on anything suspicious\n")

		sb.WriteString("\n### Extract Values\n")
		sb.WriteString("`saz_query_sessions(capture, expression)` runs JQ over each session record:\n")
		sb.WriteString("- Fields: `index`, `status`, `url`, `body_length`, `request_path`, `response_path`, `request`, `response`\n")
		sb.WriteString("- `select(.status >= 400) | {index, url}` lists failures\n")
		sb.WriteString("- `.response | split(\"\\r\\n\\r\\n\")[1] | fromjson | .data` parses a JSON body\n")
		sb.WriteString("- `[.url | capture(\"https?://(?<h>[^/]+)\").h] | unique` collects hosts\n")
		sb.WriteString("- Set `deduplicate: true` to remove duplicate values\n")

		sb.WriteString("\n### Read One Body\n")
		sb.WriteString("`saz_extract_body(capture, index, expression)` parses the response (or `side: request`) body:\n")
		sb.WriteString("- Mode follows Content-Type: JSON/YAML use jq, HTML uses CSS selectors, XML uses XPath, forms use keys, anything else regex\n")
		sb.WriteString("- Override with `mode`, e.g. `mode: xpath` for `//a/@href` style queries on HTML\n")

		sb.WriteString("\n### Keep Results\n")
		fmt.Fprintf(&sb, "`saz_export_sessions(capture)` writes every session to SQLite (`%s` by default). Re-exporting replaces the capture's rows.\n", cfg.ExportDBPath)

		sb.WriteString("\n## When Parsing Fails\n")
		sb.WriteString("- `ARCHIVE_ERROR` means the file is empty, spanned, not a zip, or a session is missing its request/response pair or status line\n")
		sb.WriteString("- `saz_index_table` reads the viewer's `_index.htm` summary, which can still list sessions of a damaged capture\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for efficient capture tool usage",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
