package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(NewLogger(Config{Level: "info", Format: FormatJSON}, &buf), "store")

	l.Debug().Msg("hidden")
	l.Info().Str("operation", "save").Msg("saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, "save", entry["operation"])
	assert.Equal(t, "saved", entry["message"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "farmcarbon.log")

	result := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Msg("to file")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	var buf bytes.Buffer
	result := newLoggerWithPath(Config{Output: OutputFile, File: filepath.Join(blocker, "app.log")}, &buf)

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)

	result.Logger.Info().Msg("still logged")
	assert.Contains(t, buf.String(), "still logged")
	assert.NoError(t, result.Close())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(Config{Format: FormatJSON}, &buf)

	ctx := ContextWithTraceID(base.WithContext(context.Background()), "01HTRACE")
	l := FromContext(ctx)
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "01HTRACE", entry["trace_id"])
}

func TestFromContext_Default(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewLogger(Config{Format: FormatJSON}, &buf))
	t.Cleanup(func() { SetDefault(zerolog.Nop()) })

	l := FromContext(context.Background())
	l.Info().Msg("fallback")
	assert.Contains(t, buf.String(), "fallback")
}

func TestTraceID(t *testing.T) {
	id := NewTraceID()
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)

	assert.Empty(t, TraceIDFromContext(context.Background()))
	ctx := ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
	assert.NotEqual(t, id, GetOrGenerateTraceID(context.Background()))
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "permission denied")
	assert.Contains(t, buf.String(), "Logging to /tmp/x.log")
	assert.Contains(t, buf.String(), "permission denied")
}
