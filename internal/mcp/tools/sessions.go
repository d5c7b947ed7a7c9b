package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/pkg/types"
)

// GetSessionInput is the input for saz_get_session.
type GetSessionInput struct {
	Capture     string `json:"capture" jsonschema:"Capture file name relative to the capture directory"`
	Index       uint32 `json:"index" jsonschema:"Session index (1-based)"`
	MaxBytes    int    `json:"max_bytes,omitempty" jsonschema:"Max bytes of raw text per side (default: TOOL_MAX_BYTES_DEFAULT)"`
	SummaryOnly bool   `json:"summary_only,omitempty" jsonschema:"Omit raw request/response text"`
}

// GetSessionOutput is the output for saz_get_session.
type GetSessionOutput struct {
	Summary           *types.SessionSummary `json:"summary"`
	RequestPath       string                `json:"request_path"`
	ResponsePath      string                `json:"response_path"`
	Request           string                `json:"request,omitempty"`
	Response          string                `json:"response,omitempty"`
	RequestTruncated  bool                  `json:"request_truncated,omitempty"`
	ResponseTruncated bool                  `json:"response_truncated,omitempty"`
	Resource          types.ResourceRef     `json:"resource"`
}

// ToolGetSession returns one session with its raw text.
func ToolGetSession(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetSessionInput) (*sdkmcp.CallToolResult, GetSessionOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetSessionInput) (*sdkmcp.CallToolResult, GetSessionOutput, error) {
		if input.Index == 0 {
			return nil, GetSessionOutput{}, ErrInvalidInput("index must be >= 1")
		}

		sess, c, err := d.Store.Session(ctx, input.Capture, input.Index)
		if err != nil {
			return nil, GetSessionOutput{}, WrapCaptureError(err)
		}

		out := GetSessionOutput{
			Summary:      indexer.FromSession(sess).ToSummary(c.Name),
			RequestPath:  sess.RequestPath,
			ResponsePath: sess.ResponsePath,
			Resource: types.ResourceRef{
				URI:  SessionURI(c.Name, sess.Index),
				MIME: MimeJSON,
				Hint: "Full untruncated session record",
			},
		}
		if input.SummaryOnly {
			return nil, out, nil
		}

		maxBytes := input.MaxBytes
		if maxBytes <= 0 {
			maxBytes = d.Config.ToolMaxBytesDefault
		}
		out.Request, out.RequestTruncated = TruncateText(sess.Request, maxBytes)
		out.Response, out.ResponseTruncated = TruncateText(sess.Response, maxBytes)

		return nil, out, nil
	}
}
