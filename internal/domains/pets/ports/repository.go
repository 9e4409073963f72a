package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
	"github.com/Apurer/petshow-api/internal/shared/projection"
)

var ErrNotFound = errors.New("pet not found")

// Repository persists pets together with their breed links.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error)
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error)
}

// ParticipationCleaner removes a pet's event entries and award holdings before the pet itself is deleted.
type ParticipationCleaner interface {
	// ReleasePet runs remove inside the release transaction so a failed delete leaves entries untouched.
	ReleasePet(ctx context.Context, petID int64, remove func(ctx context.Context) error) error
}
