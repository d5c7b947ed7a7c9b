// Package types provides shared types for saz-mcp.
// These types are used across multiple packages and are designed for external consumption.
package types

// SessionSummary is a compact session representation for listings and search results.
type SessionSummary struct {
	Capture       string `json:"capture"`
	Index         uint32 `json:"index"`
	URL           string `json:"url"`
	Host          string `json:"host,omitempty"`
	Status        uint32 `json:"status"`
	BodyLength    uint64 `json:"body_length"`
	RequestBytes  int    `json:"request_bytes"`
	ResponseBytes int    `json:"response_bytes"`
}

// CaptureInfo describes a capture archive found in the capture directory.
type CaptureInfo struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	SizeBytes    int64  `json:"size_bytes"`
	ModTimeMs    int64  `json:"mod_time_ms"`
	Loaded       bool   `json:"loaded"`
	SessionCount int    `json:"session_count,omitempty"`
}

// ResourceRef points to an MCP resource.
type ResourceRef struct {
	URI  string `json:"uri"`
	MIME string `json:"mime"`
	Hint string `json:"hint,omitempty"`
}
