// Package temporal dials the Temporal frontend with the process-wide tracer and logger.
package temporal

import (
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ErrDisabled is returned by Dial when Temporal was switched off by configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// Settings selects the Temporal frontend.
type Settings struct {
	Address   string
	Namespace string
	Disabled  bool
}

// Dial connects a client whose calls are traced and whose SDK logs go through logger.
func Dial(settings Settings, tracer trace.Tracer, logger *slog.Logger) (client.Client, error) {
	if settings.Disabled {
		return nil, ErrDisabled
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  orDefault(settings.Address, client.DefaultHostPort),
		Namespace: orDefault(settings.Namespace, client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
