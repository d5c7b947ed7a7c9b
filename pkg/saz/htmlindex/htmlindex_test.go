package htmlindex

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/saz-mcp/pkg/saz"
)

const indexHTML = `<html><head><title>Session Archive</title></head><body>
<table>
<thead><tr><th>&nbsp;</th><th>#</th><th>Result</th><th>Protocol</th><th>Host</th><th>URL</th><th>Body</th></tr></thead>
<tbody>
<tr><td><a href='raw\02_c.txt'>C</a>&nbsp;<a href='raw\02_s.txt'>S</a>&nbsp;<a href='raw\02_m.xml'>M</a></td><td>2</td><td>404</td><td>HTTP</td><td>example.com</td><td>/missing</td><td>1,234</td></tr>
<tr><td><a href='raw\01_c.txt'>C</a>&nbsp;<a href='raw\01_s.txt'>S</a></td><td>1</td><td>200</td><td>HTTP</td><td>example.com</td><td>/</td><td>512</td></tr>
<tr><td><a href='raw\03_c.txt'>C</a></td><td>3</td><td>-</td><td>HTTP</td><td>Tunnel to</td><td>example.com:443</td><td>0</td></tr>
</tbody></table></body></html>`

func indexEntries() []saz.Entry {
	return []saz.Entry{
		{Path: IndexFile, Content: indexHTML},
		{Path: "raw/01_c.txt", Content: "GET / HTTP/1.1\r\n"},
		{Path: "raw/01_s.txt", Content: "HTTP/1.1 200 OK\r\n"},
		{Path: "raw/02_c.txt", Content: "GET /missing HTTP/1.1\r\n"},
		{Path: "raw/02_s.txt", Content: "HTTP/1.1 404 Not Found\r\n"},
		{Path: "raw/03_c.txt", Content: "CONNECT example.com:443 HTTP/1.1\r\n"},
	}
}

func TestParse(t *testing.T) {
	sessions, err := Parse(indexEntries())
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, uint32(1), sessions[0].Index)
	assert.Equal(t, uint32(200), sessions[0].Status)
	assert.Equal(t, "/", sessions[0].URL)
	assert.Equal(t, uint64(512), sessions[0].BodyLength)
	assert.Equal(t, "raw/01_c.txt", sessions[0].RequestPath)
	assert.Equal(t, "GET / HTTP/1.1\r\n", sessions[0].Request)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", sessions[0].Response)

	assert.Equal(t, uint32(2), sessions[1].Index)
	assert.Equal(t, uint32(404), sessions[1].Status)
	assert.Equal(t, uint64(1234), sessions[1].BodyLength)

	assert.Equal(t, uint32(3), sessions[2].Index)
	assert.Equal(t, uint32(0), sessions[2].Status)
	assert.Equal(t, "example.com:443", sessions[2].URL)
	assert.Empty(t, sessions[2].ResponsePath)
	assert.Empty(t, sessions[2].Response)
}

func TestParse_NoIndex(t *testing.T) {
	_, err := Parse([]saz.Entry{{Path: "raw/01_c.txt"}})
	assert.ErrorIs(t, err, ErrNoIndex)

	_, err = Parse([]saz.Entry{{Path: IndexFile, Content: "<html><body>nothing</body></html>"}})
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestParse_LinkedEntryMissing(t *testing.T) {
	entries := indexEntries()[:2] // index + 01_c only
	_, err := Parse(entries)
	assert.ErrorIs(t, err, saz.ErrMissingEntry)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.saz")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	_, err = zw.Create("raw/")
	require.NoError(t, err)
	for _, e := range indexEntries() {
		w, err := zw.Create(e.Path)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	sessions, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestParseBodyLength(t *testing.T) {
	assert.Equal(t, uint64(1234567), parseBodyLength("1,234,567"))
	assert.Equal(t, uint64(0), parseBodyLength("-"))
	assert.Equal(t, uint64(0), parseBodyLength(""))
}
