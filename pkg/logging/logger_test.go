package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test")
	logger.SetOutput(&buf)
	logger.SetLevel(WARN)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New("prakriti-api")
	logger.SetOutput(&buf)
	logger.SetFormat("json")

	logger.Error("model load failed", errors.New("file missing"),
		String("task", "dosha"), Component("registry"))

	var e map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	assert.Equal(t, "ERROR", e["level"])
	assert.Equal(t, "model load failed", e["message"])
	assert.Equal(t, "file missing", e["error"])
	assert.Equal(t, "prakriti-api", e["service"])

	fields, ok := e["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dosha", fields["task"])
	assert.Equal(t, "registry", fields["component"])
}

func TestTextFormatIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test")
	logger.SetOutput(&buf)

	logger.Info("request handled", String("method", "POST"), Int("status", 200))

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[INFO] request handled")
	assert.Contains(t, line, "method=POST")
	assert.Contains(t, line, "status=200")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("WARNING"))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel("anything-else"))
}
