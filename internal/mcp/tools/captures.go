package tools

import (
	"context"
	"fmt"
	"sort"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/pkg/types"
)

// CapturesListInput is the input for saz_captures_list.
type CapturesListInput struct{}

// CapturesListOutput is the output for saz_captures_list.
type CapturesListOutput struct {
	Dir      string              `json:"dir"`
	Captures []types.CaptureInfo `json:"captures,omitzero"`
	Hint     string              `json:"hint,omitempty"`
}

// ToolCapturesList lists the capture archives in the capture directory.
func ToolCapturesList(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CapturesListInput) (*sdkmcp.CallToolResult, CapturesListOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CapturesListInput) (*sdkmcp.CallToolResult, CapturesListOutput, error) {
		captures, err := d.Store.List(ctx)
		if err != nil {
			return nil, CapturesListOutput{}, WrapCaptureError(err)
		}

		out := CapturesListOutput{Dir: d.Store.Dir(), Captures: captures}
		if len(captures) == 0 {
			out.Hint = "No .saz files found. Set SAZ_CAPTURE_DIR to the directory holding your captures."
		} else {
			out.Hint = fmt.Sprintf("Use saz_sessions_list(capture=%q) to list its sessions.", captures[0].Name)
		}
		return nil, out, nil
	}
}

// SessionsListInput is the input for saz_sessions_list.
type SessionsListInput struct {
	Capture string `json:"capture" jsonschema:"Capture file name relative to the capture directory"`
	Offset  int    `json:"offset,omitempty" jsonschema:"Pagination offset"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Max sessions (default: 50, max: 100)"`
}

// SessionsListOutput is the output for saz_sessions_list.
type SessionsListOutput struct {
	Capture  string                 `json:"capture"`
	Total    int                    `json:"total"`
	Sessions []types.SessionSummary `json:"sessions,omitzero"`
	Hosts    []string               `json:"hosts,omitzero"`
	Hint     string                 `json:"hint,omitempty"`
}

// ToolSessionsList lists session summaries of a capture in index order.
func ToolSessionsList(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SessionsListInput) (*sdkmcp.CallToolResult, SessionsListOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SessionsListInput) (*sdkmcp.CallToolResult, SessionsListOutput, error) {
		c, err := d.Store.Load(ctx, input.Capture)
		if err != nil {
			return nil, SessionsListOutput{}, WrapCaptureError(err)
		}

		limit := clampLimit(input.Limit, d.Config.DefaultListLimit, config.MaxSearchLimitValue)
		total := c.Index.DocCount()
		start := min(max(input.Offset, 0), total)
		end := min(start+limit, total)

		out := SessionsListOutput{
			Capture:  c.Name,
			Total:    total,
			Sessions: make([]types.SessionSummary, 0, end-start),
		}
		for docID := start; docID < end; docID++ {
			out.Sessions = append(out.Sessions, *c.Index.Meta(uint32(docID)).ToSummary(c.Name))
		}

		hosts := c.Index.Hosts()
		sort.Strings(hosts)
		out.Hosts = hosts

		switch {
		case total == 0:
			out.Hint = "Capture has no sessions."
		case end < total:
			out.Hint = fmt.Sprintf("Showing %d-%d of %d. Use offset=%d for the next page, or saz_search_sessions to filter.", start+1, end, total, end)
		default:
			out.Hint = "Use saz_get_session with an index for raw request/response text."
		}
		return nil, out, nil
	}
}
