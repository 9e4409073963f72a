package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/petshow-api/internal/app/api"
	participationmapper "github.com/Apurer/petshow-api/internal/domains/participation/adapters/http/mapper"
	participationdomain "github.com/Apurer/petshow-api/internal/domains/participation/domain"
	participationports "github.com/Apurer/petshow-api/internal/domains/participation/ports"
	"github.com/Apurer/petshow-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/petshow-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/petshow-api/internal/platform/postgres"
)

// env carries what the commands reach for outside the process.
type env struct {
	out     io.Writer
	migrate func(ctx context.Context) error
	connect func(ctx context.Context) (participationports.Service, func(), error)
	timeout time.Duration
}

func defaultEnv() env {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return env{
		out:     os.Stdout,
		timeout: 30 * time.Second,
		migrate: func(ctx context.Context) error {
			cfg, err := api.LoadConfig()
			if err != nil {
				return err
			}
			db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithPool(cfg.DBPool()))
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			return migrations.Run(db.WithContext(ctx))
		},
		connect: func(ctx context.Context) (participationports.Service, func(), error) {
			cfg, err := api.LoadConfig()
			if err != nil {
				return nil, nil, err
			}
			if cfg.PostgresDSN == "" {
				return nil, nil, errors.New("POSTGRES_DSN must be set")
			}
			services, cleanup := api.BuildServices(ctx, cfg, &platformobservability.Instruments{Logger: logger})
			return services.Participation, cleanup, nil
		},
	}
}

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:           "showctl",
		Short:         "Administer the pet show registration database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(e.out)
	root.AddCommand(newMigrateCmd(e), newLogCmd(e), newStandingCmd(e))
	return root
}

func newMigrateCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema and seed the size categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout)
			defer cancel()
			if err := e.migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newLogCmd(e env) *cobra.Command {
	var registrationID, eventID int64
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the transfer and withdrawal history as JSON",
		Long: `Print the participation log as JSON, oldest first.

Examples:
  # Everything
  showctl log

  # One registration
  showctl log --registration 42

  # Rows touching an event on either side of a transfer
  showctl log --event 7 | jq '.[].action'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if registrationID < 0 || eventID < 0 {
				return errors.New("ids must be positive")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout)
			defer cancel()
			service, cleanup, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			rows, err := service.ListLog(ctx, participationdomain.LogFilter{RegistrationID: registrationID, EventID: eventID})
			if err != nil {
				return fmt.Errorf("list log: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), participationmapper.FromLog(rows))
		},
	}
	cmd.Flags().Int64VarP(&registrationID, "registration", "r", 0, "Only rows of this registration")
	cmd.Flags().Int64VarP(&eventID, "event", "e", 0, "Only rows whose original or new event is this one")
	return cmd
}

func newStandingCmd(e env) *cobra.Command {
	var eventID int64
	cmd := &cobra.Command{
		Use:   "standing",
		Short: "Print paid participants against capacity for an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if eventID <= 0 {
				return errors.New("--event is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout)
			defer cancel()
			service, cleanup, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			standing, err := service.EventStanding(ctx, eventID)
			if err != nil {
				return fmt.Errorf("event standing: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), participationmapper.FromStanding(standing))
		},
	}
	cmd.Flags().Int64VarP(&eventID, "event", "e", 0, "Event id")
	return cmd
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
