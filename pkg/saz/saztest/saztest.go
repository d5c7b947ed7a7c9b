// Package saztest builds capture archives for tests.
package saztest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Exchange is one request/response pair written into an archive.
type Exchange struct {
	Method string // default GET
	URL    string
	Status int    // default 200
	Body   string // response body; Content-Length is set from it

	ContentType string // response Content-Type, omitted when empty
}

// Request renders the raw request text.
func (e Exchange) Request() string {
	method := e.Method
	if method == "" {
		method = http.MethodGet
	}
	return fmt.Sprintf("%s %s HTTP/1.1\r\nUser-Agent: saztest\r\n\r\n", method, e.URL)
}

// Response renders the raw response text.
func (e Exchange) Response() string {
	status := e.Status
	if status == 0 {
		status = http.StatusOK
	}
	var ct string
	if e.ContentType != "" {
		ct = "Content-Type: " + e.ContentType + "\r\n"
	}
	return fmt.Sprintf("HTTP/1.1 %d %s\r\n%sContent-Length: %d\r\n\r\n%s",
		status, http.StatusText(status), ct, len(e.Body), e.Body)
}

// Archive builds a capture archive holding the exchanges as sessions 1..N.
// Sequence numbers are padded to at least three digits.
func Archive(exchanges ...Exchange) ([]byte, error) {
	width := max(3, len(strconv.Itoa(len(exchanges))))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("raw/"); err != nil {
		return nil, err
	}
	for i, e := range exchanges {
		n := fmt.Sprintf("%0*d", width, i+1)
		if err := writeEntry(zw, "raw/"+n+"_c.txt", e.Request()); err != nil {
			return nil, err
		}
		if err := writeEntry(zw, "raw/"+n+"_s.txt", e.Response()); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(content))
	return err
}

// WriteFile writes an archive of the exchanges to dir/name and returns its path.
func WriteFile(tb testing.TB, dir, name string, exchanges ...Exchange) string {
	tb.Helper()

	data, err := Archive(exchanges...)
	if err != nil {
		tb.Fatalf("building archive: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("writing archive: %v", err)
	}
	return path
}
