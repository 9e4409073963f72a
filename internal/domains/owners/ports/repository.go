package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petshow-api/internal/domains/owners/domain"
)

var (
	ErrNotFound       = errors.New("owner not found")
	ErrDuplicateEmail = errors.New("owner email already registered")
)

// Repository persists owner profiles. Owners are never deleted.
type Repository interface {
	Save(ctx context.Context, owner *domain.Owner) (*domain.Owner, error)
	GetByID(ctx context.Context, id int64) (*domain.Owner, error)
	List(ctx context.Context) ([]*domain.Owner, error)
}
