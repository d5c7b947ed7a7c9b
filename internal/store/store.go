// Package store loads capture archives from disk and keeps parsed, indexed
// captures in an LRU cache.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/usestring/saz-mcp/internal/cache"
	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/pkg/saz"
	"github.com/usestring/saz-mcp/pkg/types"
)

// CaptureExt is the file extension of capture archives.
const CaptureExt = ".saz"

var (
	// ErrEmptyName is returned when no capture name is given.
	ErrEmptyName = errors.New("capture name is required")
	// ErrSessionNotFound is returned when a capture has no session with the requested index.
	ErrSessionNotFound = errors.New("session not found")
	// ErrOutsideCaptureDir is returned when a capture name resolves outside
	// the capture directory and external paths are not allowed.
	ErrOutsideCaptureDir = errors.New("capture path is outside the capture directory")
)

// Store resolves capture names, parses archives and caches the results.
type Store struct {
	dir           string
	allowExternal bool
	parser        *saz.Parser
	cache         *cache.CaptureCache
	group         singleflight.Group
	logger        *slog.Logger
}

// New creates a Store rooted at cfg.CaptureDir.
func New(cfg *config.Config, c *cache.CaptureCache) *Store {
	dir := cfg.CaptureDir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger := slog.Default()
	return &Store{
		dir:           dir,
		allowExternal: cfg.AllowExternalPaths,
		parser:        saz.NewParser(saz.WithWorkers(cfg.ParseWorkers), saz.WithLogger(logger)),
		cache:         c,
		logger:        logger,
	}
}

// Dir returns the absolute capture directory.
func (s *Store) Dir() string {
	return s.dir
}

// Resolve maps a capture name to an absolute path. Relative names resolve
// against the capture directory. Names that end up outside it, through an
// absolute path or "..", are rejected unless external paths are allowed.
func (s *Store) Resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	p := filepath.FromSlash(name)
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.dir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if !s.allowExternal && !s.inDir(abs) {
		return "", fmt.Errorf("%w: %s", ErrOutsideCaptureDir, name)
	}
	return abs, nil
}

func (s *Store) inDir(path string) bool {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Name returns the display name of a capture path: slash-separated and
// relative to the capture directory when it lies inside it.
func (s *Store) Name(path string) string {
	if !s.inDir(path) {
		return filepath.ToSlash(path)
	}
	rel, _ := filepath.Rel(s.dir, path)
	return filepath.ToSlash(rel)
}

// Load returns the parsed capture for name, parsing it if it is not cached
// or if the file changed since it was cached. Concurrent loads of the same
// file share one parse.
func (s *Store) Load(ctx context.Context, name string) (*cache.Capture, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &saz.Error{Kind: saz.ErrRead, Op: "stat", Archive: path, Err: err}
	}
	if info.IsDir() {
		return nil, &saz.Error{Kind: saz.ErrRead, Op: "stat", Archive: path, Err: errors.New("is a directory")}
	}

	if c, ok := s.cache.Get(path); ok {
		if !c.Stale(info.ModTime(), info.Size()) {
			return c, nil
		}
		s.cache.Remove(path)
		s.logger.Debug("capture changed on disk, reloading", "path", path)
	}

	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	v, err, _ := s.group.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.parse(path, info)
	})
	if err != nil {
		return nil, err
	}
	return v.(*cache.Capture), nil
}

func (s *Store) parse(path string, info fs.FileInfo) (*cache.Capture, error) {
	start := time.Now()
	sessions, err := s.parser.ParseFile(path)
	if err != nil {
		s.logger.Warn("capture parse failed", "path", path, "error", err)
		return nil, err
	}

	c := &cache.Capture{
		Name:     s.Name(path),
		Path:     path,
		Sessions: sessions,
		Index:    indexer.Build(sessions),
		ModTime:  info.ModTime(),
		Size:     info.Size(),
		LoadedAt: time.Now(),
	}
	s.cache.Put(path, c)

	s.logger.Info("capture loaded",
		"path", path,
		"sessions", len(sessions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c, nil
}

// Session loads a capture and returns the session with the given index.
func (s *Store) Session(ctx context.Context, name string, index uint32) (*saz.Session, *cache.Capture, error) {
	c, err := s.Load(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	sess := c.Session(index)
	if sess == nil {
		return nil, c, fmt.Errorf("%w: %s #%d", ErrSessionNotFound, c.Name, index)
	}
	return sess, c, nil
}

// List returns the capture archives under the capture directory, sorted by name.
func (s *Store) List(ctx context.Context) ([]types.CaptureInfo, error) {
	var out []types.CaptureInfo

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.dir {
				return err
			}
			s.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), CaptureExt) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		ci := types.CaptureInfo{
			Name:      s.Name(path),
			Path:      path,
			SizeBytes: info.Size(),
			ModTimeMs: info.ModTime().UnixMilli(),
		}
		if c, ok := s.cache.Peek(path); ok && !c.Stale(info.ModTime(), info.Size()) {
			ci.Loaded = true
			ci.SessionCount = len(c.Sessions)
		}
		out = append(out, ci)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing captures in %s: %w", s.dir, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
