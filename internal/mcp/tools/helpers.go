// Package tools contains MCP tool implementations for capture archives.
package tools

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MIME type constant.
const MimeJSON = "application/json"

// SessionURIPrefix is the scheme and host of session resource URIs.
const SessionURIPrefix = "saz://session/"

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// SessionURI builds the resource URI for one session of a capture.
func SessionURI(capture string, index uint32) string {
	return SessionURIPrefix + url.PathEscape(capture) + "/" + strconv.FormatUint(uint64(index), 10)
}

// ParseSessionURI splits a session resource URI into capture name and index.
func ParseSessionURI(uri string) (string, uint32, error) {
	rest, ok := strings.CutPrefix(uri, SessionURIPrefix)
	if !ok {
		return "", 0, ErrInvalidInput("invalid URI scheme: expected " + SessionURIPrefix)
	}

	i := strings.LastIndexByte(rest, '/')
	if i <= 0 || i == len(rest)-1 {
		return "", 0, ErrInvalidInput("session URI requires capture and index")
	}

	capture, err := url.PathUnescape(rest[:i])
	if err != nil {
		return "", 0, ErrInvalidInput(fmt.Sprintf("invalid capture in URI: %v", err))
	}
	index, err := strconv.ParseUint(rest[i+1:], 10, 32)
	if err != nil {
		return "", 0, ErrInvalidInput(fmt.Sprintf("invalid session index %q", rest[i+1:]))
	}
	return capture, uint32(index), nil
}

// TruncateText cuts s to at most maxBytes bytes without splitting a rune.
// A non-positive maxBytes means no limit.
func TruncateText(s string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s, false
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}

// clampLimit applies a default and an upper bound to a page size.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		limit = def
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
