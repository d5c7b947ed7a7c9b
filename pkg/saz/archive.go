package saz

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RawFolder is the top-level folder every capture archive must contain.
const RawFolder = "raw/"

// Entry is one decoded file of a capture archive.
//
// Content is immutable once created. Sessions built from the same archive
// reference it directly instead of copying it.
type Entry struct {
	Path    string // archive-relative, forward-slash separated
	Size    uint64 // uncompressed size declared by the archive
	Content string
}

// Enumerate decodes every file entry of the zip archive in r.
//
// Directory markers are dropped after checking for RawFolder, and entries
// with unsafe names (absolute, escaping the root) are skipped. Each
// remaining entry is read fully into memory and decoded with DecodeText.
// A decode failure or a missing RawFolder returns an ErrInvalid error.
func Enumerate(r io.ReaderAt, size int64) ([]Entry, error) {
	return enumerate(r, size, slog.Default())
}

func enumerate(r io.ReaderAt, size int64, logger *slog.Logger) ([]Entry, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, newError(ErrInvalid, "enumerate", "", err)
	}

	entries := make([]Entry, 0, len(zr.File))
	sawRawFolder := false

	for _, zf := range zr.File {
		name, ok := enclosedName(zf.Name)
		if !ok {
			logger.Warn("skipping archive entry with unsafe name", slog.String("entry", zf.Name))
			continue
		}

		if strings.HasSuffix(name, "/") {
			if name == RawFolder {
				sawRawFolder = true
			}
			continue
		}

		content, err := readEntry(zf)
		if err != nil {
			return nil, newError(ErrInvalid, "enumerate", name, err)
		}

		entries = append(entries, Entry{
			Path:    name,
			Size:    zf.UncompressedSize64,
			Content: content,
		})
	}

	if !sawRawFolder {
		return nil, newError(ErrInvalid, "enumerate", "", ErrNoRawFolder)
	}

	return entries, nil
}

func readEntry(zf *zip.File) (string, error) {
	rc, err := zf.Open()
	if err != nil {
		return "", fmt.Errorf("opening entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading entry: %w", err)
	}

	return DecodeText(data), nil
}

// enclosedName normalizes separators to "/" and rejects names that would
// resolve outside the archive root. A trailing "/" is preserved.
func enclosedName(name string) (string, bool) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", false
	}

	slashed := strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(slashed, "/") {
		return "", false
	}
	if len(slashed) >= 2 && slashed[1] == ':' {
		return "", false
	}

	depth := 0
	for _, seg := range strings.Split(slashed, "/") {
		switch seg {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return "", false
			}
		default:
			depth++
		}
	}

	return slashed, true
}

// entryIndex maps entry paths to their position in entries.
func entryIndex(entries []Entry) map[string]int {
	m := make(map[string]int, len(entries))
	for i, e := range entries {
		m[e.Path] = i
	}
	return m
}
