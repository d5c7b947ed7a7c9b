package types

// QueryRequest contains parameters for a jq query over session records.
type QueryRequest struct {
	Capture     string
	Indices     []uint32 // Sessions to query; empty means all
	Expression  string   // JQ expression
	Deduplicate bool
	MaxResults  int // Default 1000
}

// QueryResult contains the results of a query.
type QueryResult struct {
	Values   []any    `json:"values"`           // Extracted values
	Errors   []string `json:"errors,omitempty"` // Per-item errors
	RawCount int      `json:"raw_count"`        // Count before deduplication
}

// QuerySummary contains summary statistics for a query.
type QuerySummary struct {
	SessionsProcessed int  `json:"sessions_processed"`
	SessionsMatched   int  `json:"sessions_matched"`
	TotalValues       int  `json:"total_values"`
	UniqueValues      int  `json:"unique_values,omitempty"`
	Deduplicated      bool `json:"deduplicated"`
	Truncated         bool `json:"truncated,omitempty"`
}

// QueryResponse contains the full response from a query operation.
type QueryResponse struct {
	Summary QuerySummary `json:"summary"`
	Values  []any        `json:"values,omitzero"`
	Errors  []string     `json:"errors,omitempty"`
	Hints   []string     `json:"hints,omitempty"`
}
