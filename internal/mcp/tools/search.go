package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/pkg/types"
)

// SearchSessionsInput is the input for saz_search_sessions.
type SearchSessionsInput struct {
	Capture string                 `json:"capture" jsonschema:"Capture file name relative to the capture directory"`
	Query   string                 `json:"query,omitempty" jsonschema:"Free text search over URL tokens (host, path segments, query keys). Tokens are ANDed."`
	Filters *SearchSessionsFilters `json:"filters,omitempty" jsonschema:"Structured filters"`
	Limit   int                    `json:"limit,omitempty" jsonschema:"Max results (default: 20, max: 100)"`
	Offset  int                    `json:"offset,omitempty" jsonschema:"Pagination offset"`
}

// SearchSessionsFilters contains filter criteria for search.
type SearchSessionsFilters struct {
	Host          string `json:"host,omitempty" jsonschema:"Filter by host. Prefix with '*.' to include subdomains: '*.example.com' matches example.com and api.example.com."`
	URLContains   string `json:"url_contains,omitempty" jsonschema:"Case-insensitive URL substring match"`
	TextContains  string `json:"text_contains,omitempty" jsonschema:"Case-insensitive substring match on raw request or response text"`
	Status        uint32 `json:"status,omitempty" jsonschema:"HTTP status code"`
	StatusClass   int    `json:"status_class,omitempty" jsonschema:"Status class 1-5 (4 matches all 4xx)"`
	MinBodyLength uint64 `json:"min_body_length,omitempty" jsonschema:"Minimum declared Content-Length (inclusive)"`
	MaxBodyLength uint64 `json:"max_body_length,omitempty" jsonschema:"Maximum declared Content-Length (inclusive)"`
}

// SearchSessionsOutput is the output for saz_search_sessions.
type SearchSessionsOutput struct {
	Results   []types.SearchResult `json:"results,omitzero"`
	TotalHint int                  `json:"total_hint,omitempty"`
	Truncated bool                 `json:"truncated,omitempty"`
	Hint      string               `json:"hint,omitempty"`
}

// ToolSearchSessions searches the sessions of a capture.
func ToolSearchSessions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchSessionsInput) (*sdkmcp.CallToolResult, SearchSessionsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchSessionsInput) (*sdkmcp.CallToolResult, SearchSessionsOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultSearchLimit
		}

		searchReq := &types.SearchRequest{
			Capture: input.Capture,
			Query:   input.Query,
			Limit:   limit,
			Offset:  input.Offset,
		}

		if f := input.Filters; f != nil {
			if f.StatusClass < 0 || f.StatusClass > 5 {
				return nil, SearchSessionsOutput{}, ErrInvalidInput("status_class must be between 1 and 5")
			}
			if f.MaxBodyLength > 0 && f.MinBodyLength > f.MaxBodyLength {
				return nil, SearchSessionsOutput{}, ErrInvalidInput("min_body_length exceeds max_body_length")
			}
			searchReq.Filters = &types.SearchFilters{
				Host:          f.Host,
				URLContains:   f.URLContains,
				TextContains:  f.TextContains,
				Status:        f.Status,
				StatusClass:   f.StatusClass,
				MinBodyLength: f.MinBodyLength,
				MaxBodyLength: f.MaxBodyLength,
			}
		}

		resp, err := d.Search.Search(ctx, searchReq)
		if err != nil {
			return nil, SearchSessionsOutput{}, WrapCaptureError(err)
		}

		var hint string
		if len(resp.Results) == 0 {
			hint = "No matches found. Check the capture name and loosen filters."
		} else if resp.TotalHint > input.Offset+len(resp.Results) {
			nextOffset := input.Offset + len(resp.Results)
			hint = fmt.Sprintf("Showing %d of ~%d. Add host/status filters to narrow, or use offset=%d for next page.", len(resp.Results), resp.TotalHint, nextOffset)
		} else if len(resp.Results) == 1 && resp.Results[0].Summary != nil {
			hint = fmt.Sprintf("Single match. Use saz_get_session(index=%d) for raw text.", resp.Results[0].Summary.Index)
		} else {
			hint = "Use saz_get_session with an index for raw text, or saz_query_sessions to extract values."
		}

		return nil, SearchSessionsOutput{
			Results:   resp.Results,
			TotalHint: resp.TotalHint,
			Truncated: resp.Truncated,
			Hint:      hint,
		}, nil
	}
}
