package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns middleware that logs all incoming method calls.
// Tool calls and resource reads also carry the tool name or resource URI.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			duration := time.Since(start)
			attrs := []slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", duration.Milliseconds()),
			}
			attrs = append(attrs, requestAttrs(req)...)

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			} else {
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

func requestAttrs(req sdkmcp.Request) []slog.Attr {
	if req == nil {
		return nil
	}
	switch p := req.GetParams().(type) {
	case *sdkmcp.CallToolParamsRaw:
		if p != nil {
			return []slog.Attr{slog.String("tool", p.Name)}
		}
	case *sdkmcp.ReadResourceParams:
		if p != nil {
			return []slog.Attr{slog.String("uri", p.URI)}
		}
	case *sdkmcp.GetPromptParams:
		if p != nil {
			return []slog.Attr{slog.String("prompt", p.Name)}
		}
	}
	return nil
}
