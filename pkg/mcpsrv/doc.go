// Package mcpsrv provides an extensible MCP server over .saz capture archives.
//
// The server exposes builtin tools for listing captures, reading and
// searching sessions, running JQ over session records and exporting them to
// SQLite, plus a saz://session/{capture}/{index} resource template. Custom
// tools, prompts and resources are added with functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer(mcpsrv.WithCaptureDir("/data/captures"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Tools that need the capture store receive [Deps]:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_sessions", Description: "Count sessions"},
//	    func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
//	            c, err := d.Store.Load(ctx, in.Capture)
//	            ...
//	        }
//	    },
//	)
//
// # Configuration
//
// Settings come from environment variables and the optional TOML file named
// by SAZ_CONFIG (see internal/config). Options override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/saz-mcp.log"),
//	)
package mcpsrv
