package temporal

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

func TestDial_Disabled(t *testing.T) {
	c, err := Dial(Settings{Disabled: true}, nooptrace.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, c)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "localhost:7233", orDefault("  ", "localhost:7233"))
	assert.Equal(t, "temporal:7233", orDefault("temporal:7233", "localhost:7233"))
}
