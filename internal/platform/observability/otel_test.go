package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "  collector:4318 ")

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "local", settings.Environment)
	assert.Equal(t, "json", settings.LogFormat)
	assert.Equal(t, "collector:4318", settings.OTLPEndpoint)
	assert.True(t, settings.OTLPInsecure)
}

func TestLoadSettings_InvalidBool(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "maybe")
	_, err := LoadSettings()
	require.Error(t, err)
}

func TestNewLogger_LevelAndFormat(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, Settings{LogLevel: "warn", LogFormat: "json"})
	logger.Info("hidden")
	logger.Warn("shown", slog.Int64("event_id", 7))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.EqualValues(t, 7, line["event_id"])
}

func TestNewLogger_TextFormat(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	NewLogger(&buf, Settings{LogLevel: "bogus", LogFormat: "TEXT"}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestInstruments_NilSafe(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("test"))
	meter := instruments.Meter("test")
	_, err := meter.Int64Counter("noop")
	require.NoError(t, err)
}
