package saz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entriesFor(paths ...string) []Entry {
	entries := make([]Entry, len(paths))
	for i, p := range paths {
		entries[i] = Entry{Path: p}
	}
	return entries
}

func TestInferSessionRange(t *testing.T) {
	total, width := InferSessionRange(entriesFor(
		"raw/001_c.txt", "raw/001_s.txt", "raw/002_c.txt", "raw/002_s.txt",
	))
	assert.Equal(t, uint32(2), total)
	assert.Equal(t, 3, width)
}

func TestInferSessionRange_SkipsOtherNames(t *testing.T) {
	total, width := InferSessionRange(entriesFor(
		"[Content_Types].xml",
		"_index.htm",
		"raw/_index.htm",
		"raw/abc_c.txt",
		"raw/0007_m.xml",
		"raw/0003_c.txt",
	))
	assert.Equal(t, uint32(7), total)
	assert.Equal(t, 4, width)
}

func TestInferSessionRange_NoMatches(t *testing.T) {
	total, width := InferSessionRange(entriesFor("_index.htm", "readme.txt"))
	assert.Equal(t, uint32(0), total)
	assert.Equal(t, 0, width)

	total, width = InferSessionRange(nil)
	assert.Equal(t, uint32(0), total)
	assert.Equal(t, 0, width)
}

func TestInferSessionRange_WidthFollowsMaximum(t *testing.T) {
	// The equal-valued "12" seen later must not override the width of "0012".
	total, width := InferSessionRange(entriesFor(
		"raw/0012_c.txt", "raw/12_c.txt", "raw/3_c.txt",
	))
	assert.Equal(t, uint32(12), total)
	assert.Equal(t, 4, width)
}

func TestInferSessionRange_Overflow(t *testing.T) {
	total, width := InferSessionRange(entriesFor("raw/99999999999_c.txt", "raw/5_c.txt"))
	assert.Equal(t, uint32(5), total)
	assert.Equal(t, 1, width)
}

func TestSessionPaths(t *testing.T) {
	assert.Equal(t, "raw/007_c.txt", RequestPath(7, 3))
	assert.Equal(t, "raw/007_s.txt", ResponsePath(7, 3))
	assert.Equal(t, "raw/12_c.txt", RequestPath(12, 1))
}
