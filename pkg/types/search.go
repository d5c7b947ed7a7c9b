package types

// SearchRequest contains parameters for a search query.
type SearchRequest struct {
	Capture string         // Capture to search within
	Query   string         // Free text query over URL tokens
	Filters *SearchFilters // Optional structured filters
	Limit   int            // Default 20, max 100
	Offset  int            // Pagination offset
}

// SearchFilters contains structured filter criteria.
type SearchFilters struct {
	Host          string // Exact host, or "*.example.com" for subdomains
	URLContains   string
	TextContains  string // Substring of the raw request or response text
	Status        uint32
	StatusClass   int    // 1..5 for 1xx..5xx
	MinBodyLength uint64 // Inclusive
	MaxBodyLength uint64 // Inclusive, 0 means unbounded
}

// SearchResult represents a single search result.
type SearchResult struct {
	Summary    *SessionSummary `json:"summary"`
	Score      float64         `json:"score"`
	Highlights []string        `json:"highlights,omitempty"`
}

// SearchResponse contains the search results.
type SearchResponse struct {
	Results   []SearchResult `json:"results"`
	TotalHint int            `json:"total_hint,omitempty"`
	Truncated bool           `json:"truncated,omitempty"` // candidates exceeded the processing cap
}
