package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otherLogger struct {
	Logger
}

func TestToSlogLogger(t *testing.T) {
	base := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	assert.Same(t, base, ToSlogLogger(NewSlogLogger(base)))
	assert.Same(t, slog.Default(), ToSlogLogger(otherLogger{}))
}

func TestSlogLogger_WithAndLogRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil))).With("request_id", "req-1")

	logger.LogRequest("GET", "/health", 503, "2ms")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "/health", entry["path"])
	assert.Equal(t, float64(503), entry["status_code"])
}
