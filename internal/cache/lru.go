// Package cache provides caching utilities for parsed captures.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/pkg/saz"
)

// Capture is a parsed capture archive together with its search index.
// ModTime and Size identify the file version the sessions were parsed from.
type Capture struct {
	Name     string
	Path     string
	Sessions []saz.Session
	Index    *indexer.Index
	ModTime  time.Time
	Size     int64
	LoadedAt time.Time
}

// Session returns the session with the given index, or nil.
func (c *Capture) Session(index uint32) *saz.Session {
	meta := c.Index.MetaByIndex(index)
	if meta == nil {
		return nil
	}
	return &c.Sessions[meta.DocID]
}

// Stale reports whether the file on disk no longer matches the parsed version.
func (c *Capture) Stale(modTime time.Time, size int64) bool {
	return !c.ModTime.Equal(modTime) || c.Size != size
}

// CaptureCache provides thread-safe LRU caching for parsed captures keyed by absolute path.
type CaptureCache struct {
	cache *lru.Cache[string, *Capture]
}

// NewCaptureCache creates a new LRU cache with the specified maximum number of items.
func NewCaptureCache(maxItems int) (*CaptureCache, error) {
	c, err := lru.New[string, *Capture](maxItems)
	if err != nil {
		return nil, err
	}
	return &CaptureCache{cache: c}, nil
}

// Get retrieves a capture from the cache by its path.
// Returns the capture and true if found, nil and false otherwise.
func (c *CaptureCache) Get(path string) (*Capture, bool) {
	return c.cache.Get(path)
}

// Peek retrieves a capture without updating its recency.
func (c *CaptureCache) Peek(path string) (*Capture, bool) {
	return c.cache.Peek(path)
}

// Put adds or updates a capture in the cache.
func (c *CaptureCache) Put(path string, capture *Capture) {
	c.cache.Add(path, capture)
}

// Remove evicts a capture from the cache.
func (c *CaptureCache) Remove(path string) {
	c.cache.Remove(path)
}

// Len returns the current number of items in the cache.
func (c *CaptureCache) Len() int {
	return c.cache.Len()
}
