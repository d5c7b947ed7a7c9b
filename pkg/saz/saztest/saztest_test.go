package saztest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/saz-mcp/pkg/saz"
)

func TestArchive_ParsesBack(t *testing.T) {
	data, err := Archive(
		Exchange{URL: "http://example.com/", Body: "hello"},
		Exchange{Method: "POST", URL: "http://example.com/submit", Status: 201},
	)
	require.NoError(t, err)

	sessions, err := saz.NewParser().ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, "http://example.com/", sessions[0].URL)
	assert.Equal(t, uint32(200), sessions[0].Status)
	assert.Equal(t, uint64(5), sessions[0].BodyLength)
	assert.Equal(t, "raw/001_c.txt", sessions[0].RequestPath)

	assert.Equal(t, uint32(201), sessions[1].Status)
	assert.Equal(t, uint64(0), sessions[1].BodyLength)
}

func TestArchive_WidensPadding(t *testing.T) {
	exchanges := make([]Exchange, 1000)
	for i := range exchanges {
		exchanges[i] = Exchange{URL: "/x"}
	}
	data, err := Archive(exchanges...)
	require.NoError(t, err)

	sessions, err := saz.NewParser().ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, sessions, 1000)
	assert.Equal(t, "raw/0001_c.txt", sessions[0].RequestPath)
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "nested/one.saz", Exchange{URL: "/a"})

	sessions, err := saz.Parse(path)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
