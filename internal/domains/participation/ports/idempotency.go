package ports

import (
	"context"
	"time"
)

// IdempotencyRecord ties a client-supplied key to the registration it produced.
type IdempotencyRecord struct {
	Key            string
	RequestHash    string
	RegistrationID int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IdempotencyStore persists idempotency keys so register retries can be replayed safely.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save persists the record. An existing record with the same hash and registration is returned as is.
	// A key bound to another request returns domain.ErrIdempotencyConflict with the stored record.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
