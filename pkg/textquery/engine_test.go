package textquery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Query(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()

	t.Run("json detected", func(t *testing.T) {
		res, err := e.Query(ctx, `{"items":[{"sku":"A1"},{"sku":"B2"}]}`, "application/json", ".items[].sku", "", 0)
		require.NoError(t, err)
		assert.Equal(t, ModeJQ, res.Mode)
		assert.Equal(t, []any{"A1", "B2"}, res.Values)
	})

	t.Run("yaml through jq", func(t *testing.T) {
		res, err := e.Query(ctx, "name: demo\nports:\n  - 80\n  - 443\n", "application/yaml", ".ports | length", "", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{2}, res.Values)
	})

	t.Run("css detected", func(t *testing.T) {
		res, err := e.Query(ctx, `<ul><li>a</li><li> </li><li>b</li><li>c</li></ul>`, "text/html", "li", "", 2)
		require.NoError(t, err)
		assert.Equal(t, ModeCSS, res.Mode)
		assert.Equal(t, []any{"a", "b"}, res.Values)
		assert.True(t, res.Truncated)
	})

	t.Run("xpath xml", func(t *testing.T) {
		res, err := e.Query(ctx, `<root><item>A</item><item>B</item></root>`, "application/xml", "//item", "", 0)
		require.NoError(t, err)
		assert.Equal(t, ModeXPath, res.Mode)
		assert.Equal(t, []any{"A", "B"}, res.Values)
	})

	t.Run("xpath html", func(t *testing.T) {
		res, err := e.Query(ctx, `<html><body><a href="/x">link</a></body></html>`, "text/html", "//a", ModeXPath, 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"link"}, res.Values)
	})

	t.Run("regex with group", func(t *testing.T) {
		res, err := e.Query(ctx, "token=abc; token=def", "text/plain", `token=(\w+)`, "", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"abc", "def"}, res.Values)
	})

	t.Run("regex full match", func(t *testing.T) {
		res, err := e.Query(ctx, "code 200 then 404", "", `\d{3}`, "", 1)
		require.NoError(t, err)
		assert.Equal(t, []any{"200"}, res.Values)
		assert.True(t, res.Truncated)
	})

	t.Run("form key and all", func(t *testing.T) {
		res, err := e.Query(ctx, "a=1&b=2&b=3", "application/x-www-form-urlencoded", "b", "", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"2", "3"}, res.Values)

		res, err = e.Query(ctx, "a=1&b=2&b=3", "application/x-www-form-urlencoded", "*", "", 0)
		require.NoError(t, err)
		require.Len(t, res.Values, 1)
		assert.Equal(t, map[string]any{"a": "1", "b": []any{"2", "3"}}, res.Values[0])
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		res, err := e.Query(ctx, "<p></p>", "text/html", "h1", "", 0)
		require.NoError(t, err)
		assert.NotNil(t, res.Values)
		assert.Zero(t, res.Count)
	})
}

func TestEngine_QueryErrors(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()

	_, err := e.Query(ctx, "x", "", "x", "sql", 0)
	require.ErrorContains(t, err, "unknown mode")

	_, err = e.Query(ctx, "x", "", "(", ModeRegex, 0)
	require.ErrorContains(t, err, "invalid regex")

	_, err = e.Query(ctx, "not json", "application/json", ".", "", 0)
	require.ErrorContains(t, err, "failed to parse JSON body")

	_, err = e.Query(ctx, "<a/>", "text/html", "", ModeCSS, 0)
	require.Error(t, err)

	_, err = e.Query(ctx, "{}", "application/json", ".[", "", 0)
	require.Error(t, err)
}
