package util

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string, format LogFormat) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger, _ := NewLogger(LoggerConfig{Level: level})
	logger.AddOutput(NewConsoleOutput(buf, format))
	return logger, buf
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, ParseLogLevel(input), "input %q", input)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("warn", FormatText)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")
	logger.Errorf("shown %s", "error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestLoggerTextFieldsSorted(t *testing.T) {
	logger, buf := newBufferLogger("debug", FormatText)

	logger.With(F("zeta", 1)).Info("scan", F("alpha", "a"), F("mid", 2))

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "scan alpha=a mid=2 zeta=1"), line)
}

func TestLoggerJSONOutput(t *testing.T) {
	logger, buf := newBufferLogger("info", FormatJSON)

	logger.Info("evaluated", F("case", "flat-shoulder"))

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "evaluated", entry.Message)
	assert.Equal(t, "flat-shoulder", entry.Fields["case"])
}

func TestLoggerWithContext(t *testing.T) {
	logger, buf := newBufferLogger("info", FormatText)

	ctx := context.WithValue(context.Background(), RunIDKey, "run-7")
	logger.WithContext(ctx).Info("started")
	logger.WithContext(context.Background()).Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run_id=run-7")
	assert.NotContains(t, lines[1], "run_id")
}

func TestLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger(LoggerConfig{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("written to file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNewLoggerInvalidFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewLogger(LoggerConfig{File: filepath.Join(blocker, "app.log")})
	assert.Error(t, err)
}

func TestGlobalLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	SetLogger(nil)
	assert.NotPanics(t, func() { LogInfo("dropped") })

	logger, buf := newBufferLogger("debug", FormatText)
	SetLogger(logger)

	LogDebugf("value=%d", 3)
	LogWarn("careful", F("k", "v"))

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] value=3")
	assert.Contains(t, out, "[WARN] careful k=v")
}
