package saz

import (
	"fmt"
	"regexp"
	"strconv"
)

// sequencePattern captures the digits between the first "/" and the first
// "_" of an entry path, e.g. "001" in "raw/001_c.txt".
var sequencePattern = regexp.MustCompile(`^[^/_]*/([0-9]+)_`)

// InferSessionRange derives the session count and the zero-padding width
// from entry names alone.
//
// The highest sequence number found wins, and the width of the segment that
// produced it is recorded with it. Both change only when a strictly greater
// number appears, so a later entry with the same number but a different
// width never overrides the pair. Paths that don't match are ignored; if
// none match the result is (0, 0).
func InferSessionRange(entries []Entry) (total uint32, width int) {
	for _, e := range entries {
		m := sequencePattern.FindStringSubmatch(e.Path)
		if m == nil {
			continue
		}
		n, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			continue
		}
		if uint32(n) > total {
			total = uint32(n)
			width = len(m[1])
		}
	}
	return total, width
}

// RequestPath returns the archive path of the request file for session n.
func RequestPath(n uint32, width int) string {
	return fmt.Sprintf("%s%0*d_c.txt", RawFolder, width, n)
}

// ResponsePath returns the archive path of the response file for session n.
func ResponsePath(n uint32, width int) string {
	return fmt.Sprintf("%s%0*d_s.txt", RawFolder, width, n)
}
