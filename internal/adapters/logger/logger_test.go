package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/adapters/logger"
	"go.trai.ch/tend/internal/core/domain"
)

func newLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	return lg, &buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newLogger(t)

	lg.Info("planning 3 tasks")
	lg.Warn("task gen did not produce target out.txt")

	assert.Equal(t, "planning 3 tasks\n! task gen did not produce target out.txt\n", buf.String())
}

func TestLogger_ErrorPretty(t *testing.T) {
	lg, buf := newLogger(t)

	lg.Error(domain.WithKind(domain.ErrActionFailed, errors.New("exit status 1"), "task", "build"))

	want := "✗ Error: action failed\n" +
		"       task: build\n\n" +
		"  Caused by:\n" +
		"    → exit status 1\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newLogger(t)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(domain.Annotate(domain.ErrTaskNotFound, "task", "deploy"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "hello", info["msg"])

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "task not found", record["error"])
	chain, ok := record["chain"].([]any)
	require.True(t, ok)
	require.Len(t, chain, 1)
	entry, ok := chain[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"task": "deploy"}, entry["Metadata"])
}

func TestLogger_SetJSONKeepsOutput(t *testing.T) {
	lg, buf := newLogger(t)
	lg.SetJSON(true)
	lg.SetJSON(false)

	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}
