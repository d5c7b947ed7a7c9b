package textquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessage(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: application/json; charset=utf-8\r\n" +
		"X-Long: first\r\n" +
		"\tsecond\r\n" +
		"garbage line\r\n" +
		"\r\n" +
		`{"ok":true}`

	m := ParseMessage(raw)
	assert.Equal(t, "HTTP/1.1 200 OK", m.StartLine)
	assert.Equal(t, "application/json; charset=utf-8", m.ContentType())
	assert.Equal(t, "first second", m.Header("x-long"))
	assert.Len(t, m.Headers, 2)
	assert.Equal(t, `{"ok":true}`, m.Body)
}

func TestParseMessage_bareLF(t *testing.T) {
	m := ParseMessage("GET / HTTP/1.1\nHost: example.com\n\nbody")
	assert.Equal(t, "example.com", m.Header("Host"))
	assert.Equal(t, "body", m.Body)
}

func TestParseMessage_noBody(t *testing.T) {
	m := ParseMessage("GET / HTTP/1.1\r\nHost: example.com\r\n")
	assert.Equal(t, "GET / HTTP/1.1", m.StartLine)
	assert.Equal(t, "example.com", m.Header("Host"))
	assert.Empty(t, m.Body)
	assert.Empty(t, m.Header("Content-Type"))
}
