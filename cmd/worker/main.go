package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/worker"

	"github.com/Apurer/petshow-api/internal/app/api"
	participationactivities "github.com/Apurer/petshow-api/internal/durable/temporal/activities/participation"
	participationworkflows "github.com/Apurer/petshow-api/internal/durable/temporal/workflows/participation"
	platformobservability "github.com/Apurer/petshow-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/petshow-api/internal/platform/temporal"
)

func main() {
	ctx := context.Background()
	const serviceName = "petshow-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup := api.BuildServices(ctx, cfg, instruments)
	defer cleanup()
	activities := participationactivities.NewActivities(services.Participation)

	temporalClient, err := platformtemporal.Dial(platformtemporal.Settings{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	}, instruments.Tracer("temporal-worker"), logger)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, participationworkflows.TaskQueue, worker.Options{})
	participationworkflows.Register(w, activities)

	logger.Info("worker listening", slog.String("taskQueue", participationworkflows.TaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
