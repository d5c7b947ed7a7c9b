package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/config"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config *config.Config

	// Overrides applied on top of config
	captureDir string
	logLevel   string
	logFile    string

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Custom extensions, kept as callbacks so generic handler types survive
	registrations []func(*mcp.Server)

	// Tool registrations that need Deps
	depsRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config = c
	}
}

// WithCaptureDir sets the directory capture names are resolved against.
func WithCaptureDir(dir string) Option {
	return func(cfg *serverConfig) {
		cfg.captureDir = dir
	}
}

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithoutBuiltinTools disables all builtin capture tools and the session resource.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin capture prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool with the server.
//
// In is unmarshaled from the call arguments and Out is marshaled as the
// structured result. The zero value of Out is checked against its schema at
// registration, see [AddTool].
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool that has access to Deps.
// Use this when your tool needs the capture store, search or query engines.
//
// Example:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "find_sessions", Description: "Find sessions by URL words"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            resp, err := d.Search.Search(ctx, &types.SearchRequest{Capture: input.Capture, Query: input.Query})
//	            if err != nil {
//	                return nil, MyOutput{}, err
//	            }
//	            return nil, MyOutput{Count: len(resp.Results)}, nil
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.depsRegistrations = append(cfg.depsRegistrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt with the server.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template with the server.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
