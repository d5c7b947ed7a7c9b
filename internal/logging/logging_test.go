package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "json"})

	logger.Debug("hidden")
	logger.Info("parsed capture", slog.Int("sessions", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "parsed capture", rec["msg"])
	assert.Equal(t, float64(3), rec["sessions"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Config{Level: "debug"}).Debug("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "saz.log")
	cleanup, err := Setup(Config{Level: "info", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	slog.Info("written to file")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
