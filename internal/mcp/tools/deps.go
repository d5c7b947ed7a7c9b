package tools

import (
	"database/sql"

	"github.com/usestring/saz-mcp/internal/cache"
	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/export"
	"github.com/usestring/saz-mcp/internal/query"
	"github.com/usestring/saz-mcp/internal/search"
	"github.com/usestring/saz-mcp/internal/store"
	"github.com/usestring/saz-mcp/pkg/textquery"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Store  *store.Store
	Cache  *cache.CaptureCache
	Config *config.Config
	Search *search.SearchEngine
	Query  *query.Engine

	// Extract runs CSS, XPath, regex, form and JQ queries over message bodies.
	Extract *textquery.Engine
}

// OpenExportDB opens the export database at dbPath, or at the configured
// default when dbPath is empty.
func (d *Deps) OpenExportDB(dbPath string) (*sql.DB, string, error) {
	if dbPath == "" {
		dbPath = d.Config.ExportDBPath
	}
	db, err := export.Open(dbPath)
	if err != nil {
		return nil, dbPath, err
	}
	return db, dbPath, nil
}
