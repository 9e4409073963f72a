package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConnect_EmptyDSN(t *testing.T) {
	db, err := Connect(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyDSN)
	assert.Nil(t, db)
}

func TestConnectOrFallback_EmptyDSNLogsAndReturnsNil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	db, cleanup := ConnectOrFallback(context.Background(), "", logger)
	assert.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
	assert.Contains(t, buf.String(), "POSTGRES_DSN not set")
}

func TestConfig_TranslatesErrors(t *testing.T) {
	assert.True(t, Config().TranslateError)
}

func TestConn_PrefersTransactionFromContext(t *testing.T) {
	base := &gorm.DB{Config: Config()}
	tx := &gorm.DB{Config: Config()}

	assert.Same(t, base.Config, Conn(context.Background(), base).Config)
	assert.Same(t, tx.Config, Conn(WithTx(context.Background(), tx), base).Config)
}
