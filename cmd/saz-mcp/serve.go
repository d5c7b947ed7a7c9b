package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/saz-mcp/pkg/mcpsrv"
)

type serveOptions struct {
	captureDir string
	logLevel   string
	logFile    string
}

func runServe(parent context.Context, opts serveOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var srvOpts []mcpsrv.Option
	if opts.captureDir != "" {
		srvOpts = append(srvOpts, mcpsrv.WithCaptureDir(opts.captureDir))
	}
	if opts.logLevel != "" {
		srvOpts = append(srvOpts, mcpsrv.WithLogLevel(opts.logLevel))
	}
	if opts.logFile != "" {
		srvOpts = append(srvOpts, mcpsrv.WithLogFile(opts.logFile))
	}

	server, err := mcpsrv.NewServer(srvOpts...)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}
	defer server.Close()

	slog.Info("starting saz MCP server on stdio", "capture_dir", server.Deps().Store.Dir())
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
