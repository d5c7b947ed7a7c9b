package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/pkg/saz/htmlindex"
	"github.com/usestring/saz-mcp/pkg/types"
)

// IndexTableInput is the input for saz_index_table.
type IndexTableInput struct {
	Capture string `json:"capture" jsonschema:"Capture file name relative to the capture directory"`
}

// IndexTableOutput is the output for saz_index_table.
type IndexTableOutput struct {
	Capture  string                 `json:"capture"`
	Sessions []types.SessionSummary `json:"sessions,omitzero"`
}

// ToolIndexTable reads the capture's _index.htm session table.
func ToolIndexTable(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input IndexTableInput) (*sdkmcp.CallToolResult, IndexTableOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input IndexTableInput) (*sdkmcp.CallToolResult, IndexTableOutput, error) {
		path, err := d.Store.Resolve(input.Capture)
		if err != nil {
			return nil, IndexTableOutput{}, WrapCaptureError(err)
		}

		sessions, err := htmlindex.ParseFile(path)
		if err != nil {
			return nil, IndexTableOutput{}, WrapCaptureError(err)
		}

		name := d.Store.Name(path)
		out := IndexTableOutput{
			Capture:  name,
			Sessions: make([]types.SessionSummary, 0, len(sessions)),
		}
		for i := range sessions {
			out.Sessions = append(out.Sessions, *indexer.FromSession(&sessions[i]).ToSummary(name))
		}
		return nil, out, nil
	}
}
