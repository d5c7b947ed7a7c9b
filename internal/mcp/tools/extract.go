package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/pkg/textquery"
	"github.com/usestring/saz-mcp/pkg/types"
)

const defaultExtractMaxResults = 100

// ExtractBodyInput is the input for saz_extract_body.
type ExtractBodyInput struct {
	Capture    string `json:"capture" jsonschema:"Capture file name relative to the capture directory"`
	Index      uint32 `json:"index" jsonschema:"Session index (1-based)"`
	Side       string `json:"side,omitempty" jsonschema:"Message to read: response (default) or request"`
	Expression string `json:"expression" jsonschema:"CSS selector, XPath, regex, form key ('*' for all) or JQ expression"`
	Mode       string `json:"mode,omitempty" jsonschema:"css, xpath, regex, form or jq (default: from Content-Type)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max values returned (default: 100)"`
}

// ExtractBodyOutput is the output for saz_extract_body.
type ExtractBodyOutput struct {
	Summary     *types.SessionSummary `json:"summary"`
	Side        string                `json:"side"`
	ContentType string                `json:"content_type,omitempty"`
	BodyBytes   int                   `json:"body_bytes"`
	Mode        string                `json:"mode"`
	Values      []any                 `json:"values,omitempty"`
	Count       int                   `json:"count"`
	Truncated   bool                  `json:"truncated,omitempty"`
	Errors      []string              `json:"errors,omitempty"`
}

// ToolExtractBody extracts values from one session's request or response body.
func ToolExtractBody(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractBodyInput) (*sdkmcp.CallToolResult, ExtractBodyOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractBodyInput) (*sdkmcp.CallToolResult, ExtractBodyOutput, error) {
		if input.Index == 0 {
			return nil, ExtractBodyOutput{}, ErrInvalidInput("index must be >= 1")
		}
		side := input.Side
		if side == "" {
			side = "response"
		}
		if side != "response" && side != "request" {
			return nil, ExtractBodyOutput{}, ErrInvalidInput("side must be 'request' or 'response'")
		}

		sess, c, err := d.Store.Session(ctx, input.Capture, input.Index)
		if err != nil {
			return nil, ExtractBodyOutput{}, WrapCaptureError(err)
		}

		raw := sess.Response
		if side == "request" {
			raw = sess.Request
		}
		msg := textquery.ParseMessage(raw)

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = defaultExtractMaxResults
		}

		res, err := d.Extract.Query(ctx, msg.Body, msg.ContentType(), input.Expression, input.Mode, maxResults)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ExtractBodyOutput{}, WrapCaptureError(err)
			}
			return nil, ExtractBodyOutput{}, ErrInvalidInput(err.Error())
		}

		return nil, ExtractBodyOutput{
			Summary:     indexer.FromSession(sess).ToSummary(c.Name),
			Side:        side,
			ContentType: msg.ContentType(),
			BodyBytes:   len(msg.Body),
			Mode:        res.Mode,
			Values:      res.Values,
			Count:       res.Count,
			Truncated:   res.Truncated,
			Errors:      res.Errors,
		}, nil
	}
}
