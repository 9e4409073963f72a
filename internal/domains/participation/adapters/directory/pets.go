package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
	petsports "github.com/Apurer/petshow-api/internal/domains/pets/ports"
)

var _ ports.PetDirectory = (*PetDirectory)(nil)

// PetDirectory reads pet snapshots from the pets context.
type PetDirectory struct {
	repo petsports.Repository
}

// NewPetDirectory wraps a pets repository.
func NewPetDirectory(repo petsports.Repository) *PetDirectory {
	return &PetDirectory{repo: repo}
}

// GetPet returns the fields the engine needs for ownership and eligibility.
func (d *PetDirectory) GetPet(ctx context.Context, id int64) (*domain.PetProfile, error) {
	projection, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, petsports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrPetNotFound, id)
		}
		return nil, err
	}
	pet := projection.Entity
	return &domain.PetProfile{
		ID:       pet.ID,
		OwnerID:  pet.OwnerID,
		Name:     pet.Name,
		Size:     pet.Size,
		WeightKg: pet.WeightKg,
	}, nil
}
