package query

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/saz-mcp/pkg/saz"
)

func testSessions() []saz.Session {
	return []saz.Session{
		{
			Index: 1, Status: 200, URL: "https://example.com/api/users", BodyLength: 27,
			RequestPath: "raw/1_c.txt", ResponsePath: "raw/1_s.txt",
			Request:  "GET https://example.com/api/users HTTP/1.1\r\n\r\n",
			Response: "HTTP/1.1 200 OK\r\nContent-Length: 27\r\n\r\n{\"users\":[\"alice\",\"bob\"]}",
		},
		{
			Index: 2, Status: 404, URL: "https://example.com/missing", BodyLength: 0,
			RequestPath: "raw/2_c.txt", ResponsePath: "raw/2_s.txt",
			Request:  "GET https://example.com/missing HTTP/1.1\r\n\r\n",
			Response: "HTTP/1.1 404 Not Found\r\n\r\n",
		},
		{
			Index: 3, Status: 200, URL: "https://cdn.example.com/app.js", BodyLength: 5120,
			RequestPath: "raw/3_c.txt", ResponsePath: "raw/3_s.txt",
			Request:  "GET https://cdn.example.com/app.js HTTP/1.1\r\n\r\n",
			Response: "HTTP/1.1 200 OK\r\nContent-Length: 5120\r\n\r\n",
		},
	}
}

func TestSessionValue(t *testing.T) {
	s := testSessions()[0]
	v := SessionValue(&s)

	assert.Equal(t, 1, v["index"])
	assert.Equal(t, 200, v["status"])
	assert.Equal(t, 27, v["body_length"])
	assert.Equal(t, "https://example.com/api/users", v["url"])
	assert.Equal(t, "raw/1_s.txt", v["response_path"])
	assert.Equal(t, s.Response, v["response"])
}

func TestEngine_QuerySessions_Simple(t *testing.T) {
	engine := NewEngine()

	result, err := engine.QuerySessions(context.Background(), testSessions(), ".url", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{
		"https://example.com/api/users",
		"https://example.com/missing",
		"https://cdn.example.com/app.js",
	}, result.Values)
	assert.Equal(t, 3, result.RawCount)
	assert.Equal(t, []uint32{1, 2, 3}, result.MatchedIndices)
	assert.False(t, result.Truncated)
}

func TestEngine_QuerySessions_Select(t *testing.T) {
	engine := NewEngine()

	result, err := engine.QuerySessions(context.Background(), testSessions(), "select(.status >= 400) | .index", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{2}, result.Values)
	assert.Equal(t, []uint32{2}, result.MatchedIndices)
	assert.Equal(t, map[string]int{"session[2]": 1}, result.LabelCounts)
}

func TestEngine_QuerySessions_Arithmetic(t *testing.T) {
	engine := NewEngine()

	result, err := engine.QuerySessions(context.Background(), testSessions(), "select(.body_length > 1000) | .body_length - 5000", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{120}, result.Values)
}

func TestEngine_QuerySessions_ParsesBodyFromRawText(t *testing.T) {
	engine := NewEngine()

	expr := `select(.index == 1) | .response | split("\r\n\r\n")[1] | fromjson | .users[]`
	result, err := engine.QuerySessions(context.Background(), testSessions(), expr, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"alice", "bob"}, result.Values)
}

func TestEngine_QuerySessions_Deduplicate(t *testing.T) {
	engine := NewEngine()

	result, err := engine.QuerySessions(context.Background(), testSessions(), ".status", true, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{200, 404}, result.Values)
	assert.Equal(t, 3, result.RawCount)
}

func TestEngine_QuerySessions_MaxResults(t *testing.T) {
	engine := NewEngine()

	result, err := engine.QuerySessions(context.Background(), testSessions(), ".index", false, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, result.Values)
	assert.True(t, result.Truncated)

	result, err = engine.QuerySessions(context.Background(), testSessions(), ".index", false, 3)
	require.NoError(t, err)
	assert.Len(t, result.Values, 3)
	assert.False(t, result.Truncated)
}

func TestEngine_QuerySessions_NilValuesSkipped(t *testing.T) {
	engine := NewEngine()

	result, err := engine.QuerySessions(context.Background(), testSessions(), ".missing", false, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	assert.Empty(t, result.MatchedIndices)
}

func TestEngine_QuerySessions_RuntimeErrorsAreLabeled(t *testing.T) {
	engine := NewEngine()

	result, err := engine.QuerySessions(context.Background(), testSessions(), ".missing[]", false, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	require.Len(t, result.Errors, 3)
	assert.True(t, strings.HasPrefix(result.Errors[0], "session[1]: "))
	assert.True(t, strings.HasPrefix(result.Errors[2], "session[3]: "))
	assert.Contains(t, result.Errors[0], "may not exist")
}

func TestEngine_QuerySessions_InvalidExpression(t *testing.T) {
	engine := NewEngine()

	_, err := engine.QuerySessions(context.Background(), testSessions(), ".[", false, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestEngine_QuerySessions_CanceledContext(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.QuerySessions(ctx, testSessions(), ".url", false, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ValidateExpression(t *testing.T) {
	engine := NewEngine()

	assert.NoError(t, engine.ValidateExpression(".url"))
	assert.NoError(t, engine.ValidateExpression("select(.status == 200) | .index"))

	err := engine.ValidateExpression(".[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position")

	err = engine.ValidateExpression("undefined_func(1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile")
}

func TestValueKey(t *testing.T) {
	assert.Equal(t, "s:a", valueKey("a"))
	assert.Equal(t, "n:1", valueKey(1))
	assert.Equal(t, "n:1.5", valueKey(1.5))
	assert.Equal(t, "b:true", valueKey(true))
	assert.Equal(t, "null", valueKey(nil))
	assert.Equal(t, `j:{"a":1}`, valueKey(map[string]any{"a": 1}))
}

func TestQueryValue(t *testing.T) {
	e := NewEngine()
	input := map[string]any{"items": []any{
		map[string]any{"sku": "A1"},
		map[string]any{"sku": "B2"},
		map[string]any{"sku": "C3"},
	}}

	res, err := e.QueryValue(context.Background(), input, ".items[].sku", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"A1", "B2", "C3"}, res.Values)
	assert.False(t, res.Truncated)

	res, err = e.QueryValue(context.Background(), input, ".items[].sku", 2)
	require.NoError(t, err)
	assert.Len(t, res.Values, 2)
	assert.True(t, res.Truncated)

	res, err = e.QueryValue(context.Background(), input, ".items.sku", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "body:")

	_, err = e.QueryValue(context.Background(), input, ".[", 0)
	require.Error(t, err)
}
