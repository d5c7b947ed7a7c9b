package saz

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// file is one archive member for buildArchive. Names ending in "/" become
// directory markers.
type file struct {
	name    string
	content string
}

func buildArchive(t *testing.T, files ...file) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		if f.content != "" {
			_, err = w.Write([]byte(f.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeArchive(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.saz")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sessionPair(n, url, status string, extra string) []file {
	return []file{
		{name: "raw/" + n + "_c.txt", content: "GET " + url + " HTTP/1.1\r\nHost: example.com\r\n\r\n"},
		{name: "raw/" + n + "_s.txt", content: "HTTP/1.1 " + status + " OK\r\n" + extra + "\r\n"},
	}
}
