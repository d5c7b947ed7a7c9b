package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export PATH [DB]",
		Short: "Write a capture's sessions into a SQLite database",
		Long: `Parses the capture at PATH and stores its sessions in DB (default EXPORT_DB_PATH).
Exporting the same capture again replaces its rows.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := loadCLIConfig()
			if err != nil {
				return err
			}
			defer cleanup()

			dbPath := cfg.ExportDBPath
			if len(args) == 2 {
				dbPath = args[1]
			}
			return runExport(cmd.Context(), cmd.ErrOrStderr(), args[0], dbPath, cfg)
		},
	}
	return cmd
}

func runExport(ctx context.Context, w io.Writer, path, dbPath string, cfg *config.Config) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	sessions, err := newParser(cfg).ParseFile(abs)
	if err != nil {
		return err
	}

	db, err := export.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	id, err := export.ExportCapture(ctx, db, abs, sessions)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(w, "Exported %d sessions from %s to %s (capture id %d)\n", len(sessions), abs, dbPath, id)
	return nil
}
