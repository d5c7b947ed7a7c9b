package textquery

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/usestring/saz-mcp/internal/query"
)

// Engine dispatches extraction queries to mode-specific handlers.
type Engine struct {
	jq *query.Engine
}

// NewEngine creates an engine that runs JQ mode on jq.
func NewEngine(jq *query.Engine) *Engine {
	if jq == nil {
		jq = query.NewEngine()
	}
	return &Engine{jq: jq}
}

// Query extracts values from body. An empty mode is detected from
// contentType.
func (e *Engine) Query(ctx context.Context, body, contentType, expression, mode string, maxResults int) (*Result, error) {
	if mode == "" {
		mode = DetectMode(contentType)
	}
	if err := e.ValidateExpression(expression, mode); err != nil {
		return nil, err
	}

	switch mode {
	case ModeCSS:
		return QueryCSS(body, expression, maxResults)
	case ModeXPath:
		return QueryXPath(body, contentType, expression, maxResults)
	case ModeRegex:
		return QueryRegex(body, expression, maxResults)
	case ModeForm:
		return QueryForm(body, expression, maxResults)
	default:
		return e.queryJQ(ctx, body, contentType, expression, maxResults)
	}
}

// ValidateExpression checks that mode is known and expression is usable
// with it.
func (e *Engine) ValidateExpression(expression, mode string) error {
	switch mode {
	case ModeCSS, ModeXPath, ModeForm:
		if expression == "" {
			return fmt.Errorf("%s expression is required", mode)
		}
		return nil
	case ModeRegex:
		_, err := QueryRegex("", expression, 0)
		return err
	case ModeJQ:
		return e.jq.ValidateExpression(expression)
	default:
		return fmt.Errorf("unknown mode: %q (valid: css, xpath, regex, form, jq)", mode)
	}
}

// queryJQ decodes body as JSON, or as YAML when the content type is not JSON,
// and runs expression over it.
func (e *Engine) queryJQ(ctx context.Context, body, contentType, expression string, maxResults int) (*Result, error) {
	var input any
	if Classify(contentType) == JSON {
		if err := json.Unmarshal([]byte(body), &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON body: %w", err)
		}
	} else {
		var doc any
		if err := yaml.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML body: %w", err)
		}
		input = normalizeYAML(doc)
	}

	res, err := e.jq.QueryValue(ctx, input, expression, maxResults)
	if err != nil {
		return nil, err
	}
	return &Result{
		Mode:      ModeJQ,
		Values:    res.Values,
		Count:     len(res.Values),
		Truncated: res.Truncated,
		Errors:    res.Errors,
	}, nil
}

// normalizeYAML converts yaml.v3 output into JSON-shaped values: maps with
// non-string keys get their keys formatted as strings.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
