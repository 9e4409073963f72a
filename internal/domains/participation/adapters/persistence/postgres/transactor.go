package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

var _ ports.Transactor = (*Transactor)(nil)

const defaultTxTimeout = 5 * time.Second

// Transactor runs participation workflows inside a PostgreSQL transaction.
type Transactor struct {
	db      *gorm.DB
	timeout time.Duration
}

// TransactorOption customizes the transactor.
type TransactorOption func(*Transactor)

// WithTxTimeout bounds transactions whose context carries no deadline.
func WithTxTimeout(timeout time.Duration) TransactorOption {
	return func(t *Transactor) {
		if timeout > 0 {
			t.timeout = timeout
		}
	}
}

// NewTransactor wires a transactor over the shared DB handle. The caller owns the DB lifecycle.
func NewTransactor(db *gorm.DB, opts ...TransactorOption) *Transactor {
	t := &Transactor{db: db, timeout: defaultTxTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// RunInTx commits when fn returns nil and rolls back otherwise.
func (t *Transactor) RunInTx(ctx context.Context, fn func(store ports.Store) error) error {
	if t == nil || t.db == nil {
		return errors.New("postgres transactor not configured")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
