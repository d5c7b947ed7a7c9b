package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/saz-mcp/internal/cache"
	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/pkg/saz"
	"github.com/usestring/saz-mcp/pkg/saz/saztest"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	cfg := config.Defaults()
	cfg.CaptureDir = dir
	cfg.ParseWorkers = 2
	c, err := cache.NewCaptureCache(4)
	require.NoError(t, err)
	return New(cfg, c)
}

func TestLoad_ParsesAndIndexes(t *testing.T) {
	dir := t.TempDir()
	saztest.WriteFile(t, dir, "one.saz",
		saztest.Exchange{URL: "https://example.com/a", Body: "abc"},
		saztest.Exchange{URL: "https://example.com/b", Status: 404},
	)
	s := newTestStore(t, dir)

	c, err := s.Load(context.Background(), "one.saz")
	require.NoError(t, err)

	assert.Equal(t, "one.saz", c.Name)
	assert.Equal(t, filepath.Join(dir, "one.saz"), c.Path)
	require.Len(t, c.Sessions, 2)
	assert.Equal(t, 2, c.Index.DocCount())
	assert.Equal(t, uint32(404), c.Sessions[1].Status)
}

func TestLoad_UsesCache(t *testing.T) {
	dir := t.TempDir()
	saztest.WriteFile(t, dir, "one.saz", saztest.Exchange{URL: "/a"})
	s := newTestStore(t, dir)

	first, err := s.Load(context.Background(), "one.saz")
	require.NoError(t, err)
	second, err := s.Load(context.Background(), "one.saz")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoad_ReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := saztest.WriteFile(t, dir, "one.saz", saztest.Exchange{URL: "/a"})
	s := newTestStore(t, dir)

	first, err := s.Load(context.Background(), "one.saz")
	require.NoError(t, err)
	require.Len(t, first.Sessions, 1)

	saztest.WriteFile(t, dir, "one.saz", saztest.Exchange{URL: "/a"}, saztest.Exchange{URL: "/b"})
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := s.Load(context.Background(), "one.saz")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Sessions, 2)
}

func TestLoad_ConcurrentCallersShareResult(t *testing.T) {
	dir := t.TempDir()
	saztest.WriteFile(t, dir, "one.saz", saztest.Exchange{URL: "/a"})
	s := newTestStore(t, dir)

	var wg sync.WaitGroup
	results := make([]*cache.Capture, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := s.Load(context.Background(), "one.saz")
			assert.NoError(t, err)
			results[i] = c
		}()
	}
	wg.Wait()

	for _, c := range results {
		require.NotNil(t, c)
		assert.Len(t, c.Sessions, 1)
	}
	assert.Equal(t, 1, s.cache.Len())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.saz"), []byte("not a zip"), 0o644))
	s := newTestStore(t, dir)

	_, err := s.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = s.Load(context.Background(), "missing.saz")
	assert.ErrorIs(t, err, saz.ErrRead)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = s.Load(context.Background(), "bad.saz")
	assert.ErrorIs(t, err, saz.ErrInvalid)
	assert.Equal(t, 0, s.cache.Len())
}

func TestLoad_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	saztest.WriteFile(t, dir, "one.saz", saztest.Exchange{URL: "/a"})
	s := newTestStore(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx, "one.saz")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSession(t *testing.T) {
	dir := t.TempDir()
	saztest.WriteFile(t, dir, "one.saz",
		saztest.Exchange{URL: "/a"},
		saztest.Exchange{URL: "/b"},
	)
	s := newTestStore(t, dir)

	sess, c, err := s.Session(context.Background(), "one.saz", 2)
	require.NoError(t, err)
	assert.Equal(t, "/b", sess.URL)
	assert.Equal(t, "one.saz", c.Name)

	_, _, err = s.Session(context.Background(), "one.saz", 3)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResolveAndName(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	p, err := s.Resolve("sub/x.saz")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "x.saz"), p)
	assert.Equal(t, "sub/x.saz", s.Name(p))

	p, err = s.Resolve(filepath.Join(dir, "y.saz"))
	require.NoError(t, err)
	assert.Equal(t, "y.saz", s.Name(p))

	p, err = s.Resolve("sub/../z.saz")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "z.saz"), p)
}

func TestResolve_OutsideCaptureDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(filepath.Dir(dir), "elsewhere.saz")

	s := newTestStore(t, dir)
	for _, name := range []string{outside, "../elsewhere.saz", "sub/../../elsewhere.saz", ".."} {
		_, err := s.Resolve(name)
		assert.ErrorIs(t, err, ErrOutsideCaptureDir, name)
	}

	_, err := s.Load(context.Background(), "../elsewhere.saz")
	assert.ErrorIs(t, err, ErrOutsideCaptureDir)
	assert.Equal(t, 0, s.cache.Len())
}

func TestResolve_ExternalPathsAllowed(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	saztest.WriteFile(t, other, "ext.saz", saztest.Exchange{URL: "/a"})

	cfg := config.Defaults()
	cfg.CaptureDir = dir
	cfg.AllowExternalPaths = true
	c, err := cache.NewCaptureCache(4)
	require.NoError(t, err)
	s := New(cfg, c)

	outside := filepath.Join(other, "ext.saz")
	p, err := s.Resolve(outside)
	require.NoError(t, err)
	assert.Equal(t, outside, p)
	assert.Equal(t, filepath.ToSlash(outside), s.Name(p))

	loaded, err := s.Load(context.Background(), outside)
	require.NoError(t, err)
	assert.Len(t, loaded.Sessions, 1)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	saztest.WriteFile(t, dir, "b.saz", saztest.Exchange{URL: "/a"})
	saztest.WriteFile(t, dir, "nested/a.SAZ", saztest.Exchange{URL: "/a"}, saztest.Exchange{URL: "/b"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	s := newTestStore(t, dir)

	_, err := s.Load(context.Background(), "nested/a.SAZ")
	require.NoError(t, err)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "b.saz", list[0].Name)
	assert.False(t, list[0].Loaded)
	assert.Positive(t, list[0].SizeBytes)

	assert.Equal(t, "nested/a.SAZ", list[1].Name)
	assert.True(t, list[1].Loaded)
	assert.Equal(t, 2, list[1].SessionCount)
}

func TestList_MissingDir(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "nope"))
	_, err := s.List(context.Background())
	assert.Error(t, err)
}
