package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/pkg/saz"
	"github.com/usestring/saz-mcp/pkg/types"
)

const defaultQueryMaxResults = 1000

// QuerySessionsInput is the input for saz_query_sessions.
type QuerySessionsInput struct {
	Capture     string   `json:"capture" jsonschema:"Capture file name relative to the capture directory"`
	Expression  string   `json:"expression" jsonschema:"JQ expression run against each session record {index, status, url, body_length, request_path, response_path, request, response}"`
	Indices     []uint32 `json:"indices,omitempty" jsonschema:"Session indices to query (default: all)"`
	Deduplicate bool     `json:"deduplicate,omitempty" jsonschema:"Drop duplicate values"`
	MaxResults  int      `json:"max_results,omitempty" jsonschema:"Max values returned (default: 1000)"`
}

// ToolQuerySessions runs a JQ expression over session records.
func ToolQuerySessions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QuerySessionsInput) (*sdkmcp.CallToolResult, types.QueryResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QuerySessionsInput) (*sdkmcp.CallToolResult, types.QueryResponse, error) {
		if input.Expression == "" {
			return nil, types.QueryResponse{}, ErrInvalidInput("expression is required")
		}
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, types.QueryResponse{}, ErrInvalidInput(err.Error())
		}

		c, err := d.Store.Load(ctx, input.Capture)
		if err != nil {
			return nil, types.QueryResponse{}, WrapCaptureError(err)
		}

		var resp types.QueryResponse

		sessions := c.Sessions
		if len(input.Indices) > 0 {
			sessions = make([]saz.Session, 0, len(input.Indices))
			for _, idx := range input.Indices {
				s := c.Session(idx)
				if s == nil {
					resp.Errors = append(resp.Errors, fmt.Sprintf("session[%d]: not found", idx))
					continue
				}
				sessions = append(sessions, *s)
			}
		}

		maxSessions := d.Config.MaxQuerySessions
		if maxSessions <= 0 {
			maxSessions = config.MaxQuerySessionsValue
		}
		if len(sessions) > maxSessions {
			resp.Hints = append(resp.Hints, fmt.Sprintf("Only the first %d of %d sessions were queried. Pass indices to target the rest.", maxSessions, len(sessions)))
			sessions = sessions[:maxSessions]
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = defaultQueryMaxResults
		}

		result, err := d.Query.QuerySessions(ctx, sessions, input.Expression, input.Deduplicate, maxResults)
		if err != nil {
			return nil, types.QueryResponse{}, WrapCaptureError(err)
		}

		resp.Summary = types.QuerySummary{
			SessionsProcessed: len(sessions),
			SessionsMatched:   len(result.MatchedIndices),
			TotalValues:       result.RawCount,
			Deduplicated:      input.Deduplicate,
			Truncated:         result.Truncated,
		}
		if input.Deduplicate {
			resp.Summary.UniqueValues = len(result.Values)
		}
		resp.Values = result.Values
		resp.Errors = append(resp.Errors, result.Errors...)

		if len(result.Values) == 0 {
			resp.Hints = append(resp.Hints, "No values. Fields are index, status, url, body_length, request_path, response_path, request, response.")
		}
		if result.Truncated {
			resp.Hints = append(resp.Hints, fmt.Sprintf("Stopped at %d values. Raise max_results or narrow with select().", maxResults))
		}

		return nil, resp, nil
	}
}
