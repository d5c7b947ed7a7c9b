package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/cache"
	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/logging"
	"github.com/usestring/saz-mcp/internal/mcp"
	"github.com/usestring/saz-mcp/internal/query"
	"github.com/usestring/saz-mcp/internal/search"
	"github.com/usestring/saz-mcp/internal/store"
	"github.com/usestring/saz-mcp/pkg/textquery"
)

// Server is the capture MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin capture tools.
//
// Configuration is loaded from the environment unless WithConfig is given.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.config = loaded
	}
	if cfg.captureDir != "" {
		cfg.config.CaptureDir = cfg.captureDir
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	deps, err := NewDeps(cfg.config)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, fn := range cfg.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.depsRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(deps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// NewDeps builds the capture cache, store and engines from cfg.
func NewDeps(cfg *config.Config) (*Deps, error) {
	captureCache, err := cache.NewCaptureCache(cfg.CaptureCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create capture cache: %w", err)
	}
	st := store.New(cfg, captureCache)
	jq := query.NewEngine()

	return &Deps{
		Store:   st,
		Cache:   captureCache,
		Config:  cfg,
		Search:  search.New(st, cfg),
		Query:   jq,
		Extract: textquery.NewEngine(jq),
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
