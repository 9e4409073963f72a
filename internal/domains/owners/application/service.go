package application

import (
	"context"
	"errors"

	"github.com/Apurer/petshow-api/internal/domains/owners/domain"
	"github.com/Apurer/petshow-api/internal/domains/owners/ports"
)

// Service exposes owner bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOwner(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	if owner == nil {
		return nil, errors.New("owner is nil")
	}
	if err := owner.Validate(); err != nil {
		return nil, mapError(err)
	}
	owner.ID = 0
	return s.repo.Save(ctx, owner)
}

func (s *Service) GetOwner(ctx context.Context, id int64) (*domain.Owner, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateOwner replaces the mutable profile fields of an existing owner.
func (s *Service) UpdateOwner(ctx context.Context, id int64, updated *domain.Owner) (*domain.Owner, error) {
	if updated == nil {
		return nil, errors.New("owner is nil")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := existing.Rename(updated.FirstName, updated.LastName); err != nil {
		return nil, mapError(err)
	}
	if err := existing.UpdateContact(updated.Email, updated.ContactNumber); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, existing)
}

func (s *Service) ListOwners(ctx context.Context) ([]*domain.Owner, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
