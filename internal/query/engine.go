// Package query provides JQ-based querying over capture session records.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/saz-mcp/pkg/saz"
)

// Engine executes JQ queries against session records.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// QueryResult contains the results of a JQ query.
type QueryResult struct {
	Values         []any          `json:"values"`                    // Extracted values
	Errors         []string       `json:"errors,omitempty"`          // Per-session errors (e.g., type mismatch)
	RawCount       int            `json:"raw_count"`                 // Count before deduplication
	MatchedIndices []uint32       `json:"matched_indices,omitempty"` // Sessions that produced values
	LabelCounts    map[string]int `json:"label_counts,omitempty"`    // Value count per label
	Truncated      bool           `json:"truncated,omitempty"`       // Stopped at maxResults
}

// SessionValue converts a session into the JSON-shaped value queries run against.
// Numbers are ints so that gojq arithmetic and comparisons behave as in jq.
func SessionValue(s *saz.Session) map[string]any {
	return map[string]any{
		"index":         int(s.Index),
		"status":        int(s.Status),
		"url":           s.URL,
		"body_length":   int(s.BodyLength),
		"request_path":  s.RequestPath,
		"response_path": s.ResponsePath,
		"request":       s.Request,
		"response":      s.Response,
	}
}

// QuerySessions executes a JQ expression against each session in turn.
// Each session is labeled "session[N]" in errors and label counts.
func (e *Engine) QuerySessions(ctx context.Context, sessions []saz.Session, expression string, deduplicate bool, maxResults int) (*QueryResult, error) {
	// Parse and compile once for all sessions
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		Values:      make([]any, 0),
		Errors:      make([]string, 0),
		LabelCounts: make(map[string]int),
	}

	seen := make(map[string]bool)
	seenErrors := make(map[string]bool) // Deduplicate similar errors
	matched := make(map[uint32]bool)

sessions:
	for i := range sessions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s := &sessions[i]
		label := fmt.Sprintf("session[%d]", s.Index)

		iter := code.RunWithContext(ctx, SessionValue(s))
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}

			// Handle errors
			if err, isErr := v.(error); isErr {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				errMsg := formatJQError(label, err)
				if !seenErrors[errMsg] {
					result.Errors = append(result.Errors, errMsg)
					seenErrors[errMsg] = true
				}
				continue
			}

			// Skip null results
			if v == nil {
				continue
			}

			// Check max results
			if maxResults > 0 && len(result.Values) >= maxResults {
				result.Truncated = true
				break sessions
			}

			result.RawCount++
			result.LabelCounts[label]++
			matched[s.Index] = true

			// Deduplicate if requested
			if deduplicate {
				key := valueKey(v)
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			result.Values = append(result.Values, v)
		}
	}

	// Sort matched indices
	for idx := range matched {
		result.MatchedIndices = append(result.MatchedIndices, idx)
	}
	sort.Slice(result.MatchedIndices, func(i, j int) bool {
		return result.MatchedIndices[i] < result.MatchedIndices[j]
	})

	return result, nil
}

func compile(expression string) (*gojq.Code, error) {
	// Parse the expression
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	// Compile the query
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// formatJQError creates a helpful error message for JQ execution errors.
//
// Runtime JQ errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so hints are chosen by string matching.
// Only the display message depends on this.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	// Add hints for common errors
	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the field may not exist on this session)"
	case strings.Contains(errStr, "cannot iterate over: string"):
		hint = " (raw text is a string, try split or test)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "cannot be parsed as JSON") || strings.Contains(errStr, "fromjson"):
		hint = " (the body is not JSON)"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// valueKey creates a string key for deduplication.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case int, float64:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}

// ValidateExpression checks that a JQ expression parses and compiles.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}

// QueryValue executes a JQ expression against a single decoded JSON value,
// such as a parsed response body.
func (e *Engine) QueryValue(ctx context.Context, input any, expression string, maxResults int) (*QueryResult, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Values: make([]any, 0)}
	iter := code.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			result.Errors = append(result.Errors, formatJQError("body", err))
			continue
		}
		if v == nil {
			continue
		}
		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			break
		}
		result.RawCount++
		result.Values = append(result.Values, v)
	}
	return result, nil
}
