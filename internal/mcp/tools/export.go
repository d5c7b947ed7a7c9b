package tools

import (
	"context"
	"path/filepath"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/export"
)

// ExportSessionsInput is the input for saz_export_sessions.
type ExportSessionsInput struct {
	Capture string `json:"capture" jsonschema:"Capture file name relative to the capture directory"`
	DBPath  string `json:"db_path,omitempty" jsonschema:"SQLite database path (default: EXPORT_DB_PATH)"`
}

// ExportSessionsOutput is the output for saz_export_sessions.
type ExportSessionsOutput struct {
	Capture          string `json:"capture"`
	DBPath           string `json:"db_path"`
	CaptureID        int64  `json:"capture_id"`
	SessionsExported int    `json:"sessions_exported"`
}

// ToolExportSessions writes every session of a capture into a SQLite database.
func ToolExportSessions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExportSessionsInput) (*sdkmcp.CallToolResult, ExportSessionsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExportSessionsInput) (*sdkmcp.CallToolResult, ExportSessionsOutput, error) {
		c, err := d.Store.Load(ctx, input.Capture)
		if err != nil {
			return nil, ExportSessionsOutput{}, WrapCaptureError(err)
		}

		db, dbPath, err := d.OpenExportDB(input.DBPath)
		if err != nil {
			return nil, ExportSessionsOutput{}, WrapCaptureError(err)
		}
		defer db.Close()

		id, err := export.ExportCapture(ctx, db, c.Path, c.Sessions)
		if err != nil {
			return nil, ExportSessionsOutput{}, WrapCaptureError(err)
		}

		if abs, err := filepath.Abs(dbPath); err == nil {
			dbPath = abs
		}
		return nil, ExportSessionsOutput{
			Capture:          c.Name,
			DBPath:           dbPath,
			CaptureID:        id,
			SessionsExported: len(c.Sessions),
		}, nil
	}
}
