package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	showserver "github.com/Apurer/petshow-api/go"

	participationworkflows "github.com/Apurer/petshow-api/internal/domains/participation/adapters/workflows"
	participationports "github.com/Apurer/petshow-api/internal/domains/participation/ports"
	platformobservability "github.com/Apurer/petshow-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/petshow-api/internal/platform/temporal"
)

const serviceName = "petshow-api"

// Run boots the pet show HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup := BuildServices(ctx, cfg, instruments)
	defer cleanup()

	var workflows participationports.WorkflowOrchestrator = participationworkflows.NewInlineParticipationWorkflows(services.Participation)
	temporalClient, err := platformtemporal.Dial(platformtemporal.Settings{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments.Tracer("temporal-client"), logger)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running registrations inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		workflows = participationworkflows.NewTemporalParticipationWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := showserver.ApiHandleFunctions{
		OwnerAPI:         showserver.NewOwnerAPI(services.Owners),
		EventAPI:         showserver.NewEventAPI(services.Catalog),
		PetAPI:           showserver.NewPetAPI(services.Pets),
		RegistrationAPI:  showserver.NewRegistrationAPI(services.Participation, workflows),
		ParticipationAPI: showserver.NewParticipationAPI(services.Participation),
	}
	router := showserver.NewRouter(handlers, otelgin.Middleware(serviceName), showserver.RequestLogger(logger))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("pet show API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pet show API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("pet show API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}
