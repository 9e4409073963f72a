package ports

import (
	"context"

	"github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

// Service exposes event setup and reference data lookups.
type Service interface {
	CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	ListEvents(ctx context.Context, openOnly bool) ([]*domain.Event, error)
	SetEventOpen(ctx context.Context, id int64, open bool) (*domain.Event, error)
	CreateBreed(ctx context.Context, breed *domain.Breed) (*domain.Breed, error)
	ListBreeds(ctx context.Context) ([]*domain.Breed, error)
}
