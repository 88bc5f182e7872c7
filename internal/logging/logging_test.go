package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptis/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewHandler_ConsoleText(t *testing.T) {
	var buf bytes.Buffer
	handler, closer := NewHandler(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	defer closer.Close()

	logger := slog.New(handler)
	logger.Info("hidden")
	logger.Warn("shown", "job_id", "j1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "job_id=j1")
	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewHandler_FileJSON(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "neptisd.log")

	handler, closer := NewHandler(config.LoggingConfig{Level: "info", Format: "json", File: logFile}, &buf)
	slog.New(handler).Info("daemon started", "port", 41720)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"daemon started"`)
	assert.Contains(t, buf.String(), `"port":41720`)
}
