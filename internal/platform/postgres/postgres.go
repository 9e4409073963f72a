// Package postgres opens the shared GORM connection pool.
package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrEmptyDSN is returned by Connect when no connection string is configured.
var ErrEmptyDSN = errors.New("postgres DSN is empty")

// Config returns the GORM settings shared by every adapter. TranslateError lets
// adapters match gorm.ErrDuplicatedKey on unique violations.
func Config() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Pool sizes the underlying database/sql pool. Zero values keep the driver defaults.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type options struct {
	pingTimeout time.Duration
	pool        Pool
}

// Option customises Connect.
type Option func(*options)

// WithPingTimeout bounds the connectivity check done after opening the pool.
func WithPingTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pingTimeout = d
		}
	}
}

// WithPool applies connection pool limits.
func WithPool(pool Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string, opts ...Option) (*gorm.DB, error) {
	cfg := options{pingTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.pool.MaxOpenConns)
	}
	if cfg.pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.pool.MaxIdleConns)
	}
	if cfg.pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.pool.ConnMaxLifetime)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOrFallback dials PostgreSQL and returns the DB plus a cleanup function.
// When dsn is empty or the connection fails it logs a warning and returns a nil
// DB with a no-op cleanup, so callers run on the in-memory adapters instead.
func ConnectOrFallback(ctx context.Context, dsn string, logger *slog.Logger, opts ...Option) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := Connect(ctx, strings.TrimSpace(dsn), opts...)
	switch {
	case errors.Is(err, ErrEmptyDSN):
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	case err != nil:
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established", slog.Int("max_open_conns", sqlDB.Stats().MaxOpenConnections))
	return db, func() { _ = sqlDB.Close() }
}
