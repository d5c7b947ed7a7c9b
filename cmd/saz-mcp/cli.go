package main

import (
	"fmt"
	"log/slog"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/logging"
	"github.com/usestring/saz-mcp/pkg/saz"
)

// loadCLIConfig loads configuration and installs the configured logger.
// The returned cleanup closes the log file, if any.
func loadCLIConfig() (*config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logCleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}
	return cfg, func() { _ = logCleanup() }, nil
}

func newParser(cfg *config.Config) *saz.Parser {
	return saz.NewParser(saz.WithWorkers(cfg.ParseWorkers), saz.WithLogger(slog.Default()))
}
