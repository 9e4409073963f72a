package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrBreedNotFound = errors.New("breed not found")
	ErrDuplicateName = errors.New("breed name already exists")
)

// Repository persists events and breeds.
type Repository interface {
	SaveEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	ListEvents(ctx context.Context, openOnly bool) ([]*domain.Event, error)
	SaveBreed(ctx context.Context, breed *domain.Breed) (*domain.Breed, error)
	ListBreeds(ctx context.Context) ([]*domain.Breed, error)
}
