package application

import (
	"context"
	"errors"

	"github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, errors.New("event is nil")
	}
	event.Normalize()
	if err := event.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveEvent(ctx, event)
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context, openOnly bool) ([]*domain.Event, error) {
	return s.repo.ListEvents(ctx, openOnly)
}

// SetEventOpen toggles whether the event accepts new registrations and transfers.
func (s *Service) SetEventOpen(ctx context.Context, id int64, open bool) (*domain.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Open = open
	return s.repo.SaveEvent(ctx, event)
}

func (s *Service) CreateBreed(ctx context.Context, breed *domain.Breed) (*domain.Breed, error) {
	if breed == nil {
		return nil, errors.New("breed is nil")
	}
	validated, err := domain.NewBreed(breed.ID, breed.Name, breed.Size)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveBreed(ctx, validated)
}

func (s *Service) ListBreeds(ctx context.Context) ([]*domain.Breed, error) {
	return s.repo.ListBreeds(ctx)
}

var _ ports.Service = (*Service)(nil)
