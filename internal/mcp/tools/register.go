package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_captures_list",
		Description: "List .saz capture archives in the capture directory with size, modification time and whether they are already parsed.",
	}, ToolCapturesList(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_sessions_list",
		Description: "List session summaries (index, url, host, status, body_length) of a capture in index order, with paging and the distinct hosts seen.",
	}, ToolSessionsList(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_get_session",
		Description: "Get one session of a capture: summary plus raw request and response text, truncated to max_bytes per side. The resource URI returns the full record.",
	}, ToolGetSession(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_search_sessions",
		Description: "Search sessions of a capture. Free-text query matches URL tokens (ANDed); filters cover host (with '*.' wildcard), status, status class, body length range, URL substring and raw text substring.",
	}, ToolSearchSessions(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_query_sessions",
		Description: "Run a JQ expression over session records ({index, status, url, body_length, request_path, response_path, request, response}) of a capture. Returns values, per-session errors and hints.",
	}, ToolQuerySessions(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_extract_body",
		Description: "Extract values from one session's response (or request) body with a CSS selector, XPath, regex, form key or JQ. Mode defaults from the Content-Type header. The body is read as stored, without undoing chunked or gzip encoding.",
	}, ToolExtractBody(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_export_sessions",
		Description: "Export all sessions of a capture into a SQLite database. Re-exporting a capture replaces its rows.",
	}, ToolExportSessions(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_index_table",
		Description: "Read the capture's _index.htm session table (the viewer's summary page) instead of the raw protocol text.",
	}, ToolIndexTable(d))
}
