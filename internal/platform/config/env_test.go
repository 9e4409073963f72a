package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Port    int           `env:"PETSHOW_TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"PETSHOW_TEST_TIMEOUT" envDefault:"5s"`
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestParseEnv_Error(t *testing.T) {
	t.Setenv("PETSHOW_TEST_PORT", "not-an-int")
	var cfg envTestConfig
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
