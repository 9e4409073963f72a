package application

import (
	"context"
	"fmt"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	types "github.com/Apurer/petshow-api/internal/domains/pets/application/types"
	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
	"github.com/Apurer/petshow-api/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo    ports.Repository
	cleaner ports.ParticipationCleaner
}

// Option customizes the pets service.
type Option func(*Service)

// WithParticipationCleaner wires the hook that releases a pet's entries and awards before deletion.
func WithParticipationCleaner(cleaner ports.ParticipationCleaner) Option {
	return func(s *Service) {
		s.cleaner = cleaner
	}
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddPet persists a new pet aggregate owned by the acting owner.
func (s *Service) AddPet(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	pet, err := buildPetFromMutation(input.OwnerID, input.PetMutationInput)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdatePet applies the provided fields to an existing pet.
func (s *Service) UpdatePet(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	projection, err := s.ownedPet(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := applyPartialMutation(projection.Entity, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	if err := projection.Entity.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, projection.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetPet loads a single pet of the acting owner.
func (s *Service) GetPet(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	return s.ownedPet(ctx, input.OwnerID, input.ID)
}

// ListByOwner returns every pet registered by the owner.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*types.PetProjection, error) {
	if ownerID <= 0 {
		return nil, mapError(domain.ErrInvalidOwner)
	}
	result, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// DeletePet releases the pet's entries and award holdings and removes the pet and its breed
// links in one transaction.
func (s *Service) DeletePet(ctx context.Context, input types.PetIdentifier) error {
	if _, err := s.ownedPet(ctx, input.OwnerID, input.ID); err != nil {
		return err
	}
	var deleteErr error
	remove := func(ctx context.Context) error {
		deleteErr = s.repo.Delete(ctx, input.ID)
		return deleteErr
	}
	if s.cleaner == nil {
		return mapError(remove(ctx))
	}
	err := s.cleaner.ReleasePet(ctx, input.ID, remove)
	if deleteErr != nil {
		return mapError(deleteErr)
	}
	if err != nil {
		return fmt.Errorf("release pet %d: %w", input.ID, err)
	}
	return nil
}

// ownedPet hides pets of other owners behind ErrNotFound.
func (s *Service) ownedPet(ctx context.Context, ownerID, petID int64) (*types.PetProjection, error) {
	if ownerID <= 0 {
		return nil, mapError(domain.ErrInvalidOwner)
	}
	projection, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return nil, mapError(err)
	}
	if projection.Entity.OwnerID != ownerID {
		return nil, ports.ErrNotFound
	}
	return projection, nil
}

func buildPetFromMutation(ownerID int64, input types.PetMutationInput) (*domain.Pet, error) {
	if input.Name == nil {
		return nil, domain.ErrEmptyName
	}
	if input.SizeID == nil {
		return nil, catalogdomain.ErrInvalidSize
	}
	if input.WeightKg == nil {
		return nil, domain.ErrInvalidWeight
	}
	pet, err := domain.NewPet(0, ownerID, *input.Name, catalogdomain.SizeCategory(*input.SizeID), *input.WeightKg)
	if err != nil {
		return nil, err
	}
	partial := input
	partial.Name = nil
	partial.SizeID = nil
	partial.WeightKg = nil
	if err := applyPartialMutation(pet, partial); err != nil {
		return nil, err
	}
	return pet, nil
}

func applyPartialMutation(target *domain.Pet, input types.PetMutationInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.SizeID != nil {
		if err := target.Resize(catalogdomain.SizeCategory(*input.SizeID)); err != nil {
			return err
		}
	}
	if input.WeightKg != nil {
		if err := target.Weigh(*input.WeightKg); err != nil {
			return err
		}
	}
	if input.Age != nil {
		if err := target.SetAge(*input.Age); err != nil {
			return err
		}
	}
	if input.Sex != nil {
		if err := target.SetSex(domain.Sex(*input.Sex)); err != nil {
			return err
		}
	}
	if input.Muzzle != nil {
		target.Muzzle = *input.Muzzle
	}
	if input.Notes != nil {
		target.Notes = *input.Notes
	}
	if input.BreedIDs != nil {
		target.ReplaceBreeds(*input.BreedIDs)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
