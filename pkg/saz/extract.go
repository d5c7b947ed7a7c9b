package saz

import (
	"regexp"
	"strconv"
)

// Patterns run over the whole text, not line by line, so captures that are
// not strictly RFC-formatted still yield their fields. "." never crosses a
// line break, so each match stays within one line.
var (
	requestLinePattern   = regexp.MustCompile(`\b(?:GET|HEAD|POST|PUT|DELETE|CONNECT|OPTIONS|TRACE) (.*) HTTP/1\.1`)
	statusLinePattern    = regexp.MustCompile(`HTTP[^\r\n]*?\b([0-9]{3})\b`)
	contentLengthPattern = regexp.MustCompile(`Content-Length:[ \t]+([0-9]+)`)
)

// ExtractURL returns the request target of the first request line
// ("METHOD target HTTP/1.1") found in text.
func ExtractURL(text string) (string, error) {
	m := requestLinePattern.FindStringSubmatch(text)
	if m == nil {
		return "", ErrNoMatch
	}
	return m[1], nil
}

// ExtractStatus returns the three-digit code of the first status line found
// in text.
func ExtractStatus(text string) (uint32, error) {
	m := statusLinePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, ErrNoMatch
	}
	code, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, ErrNoMatch
	}
	return uint32(code), nil
}

// ExtractContentLength returns the value of the first Content-Length header
// in text (matched case-sensitively), or 0 when the header is absent or does
// not fit in 64 bits. Absence is not an error.
func ExtractContentLength(text string) uint64 {
	m := contentLengthPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
