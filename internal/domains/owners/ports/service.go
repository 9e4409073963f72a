package ports

import (
	"context"

	"github.com/Apurer/petshow-api/internal/domains/owners/domain"
)

// Service exposes owner profile use cases to adapters.
type Service interface {
	CreateOwner(ctx context.Context, owner *domain.Owner) (*domain.Owner, error)
	GetOwner(ctx context.Context, id int64) (*domain.Owner, error)
	UpdateOwner(ctx context.Context, id int64, updated *domain.Owner) (*domain.Owner, error)
	ListOwners(ctx context.Context) ([]*domain.Owner, error)
}
