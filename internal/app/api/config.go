package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Apurer/petshow-api/internal/platform/config"
	platformpostgres "github.com/Apurer/petshow-api/internal/platform/postgres"
)

// Config carries environment-driven settings shared by the API, worker and admin processes.
type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	PostgresDSN       string        `env:"POSTGRES_DSN"`
	TemporalAddress   string        `env:"TEMPORAL_ADDRESS" envDefault:"localhost:7233"`
	TemporalNamespace string        `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	TemporalDisabled  bool          `env:"TEMPORAL_DISABLED"`
	StrictEligibility bool          `env:"STRICT_ELIGIBILITY"`
	TxTimeout         time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`
	AutoMigrate       bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that the env parser cannot.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a TCP port number, got %q", c.Port)
	}
	if c.TxTimeout <= 0 {
		return errors.New("TX_TIMEOUT must be a positive duration")
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return errors.New("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must not be negative")
	}
	return nil
}

// DBPool converts the pool settings for platform/postgres.
func (c Config) DBPool() platformpostgres.Pool {
	return platformpostgres.Pool{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
