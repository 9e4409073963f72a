package application

import (
	"context"
	"fmt"
	"time"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// Service runs the participation workflows. Each workflow is one store transaction.
type Service struct {
	tx          ports.Transactor
	events      ports.EventCatalog
	pets        ports.PetDirectory
	idempotency ports.IdempotencyStore
	now         func() time.Time
	strict      bool
}

// Option customizes the participation service.
type Option func(*Service)

// WithClock overrides the time source used for "today" and payment timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStrictEligibility turns eligibility warnings into ErrIneligible.
func WithStrictEligibility(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithIdempotencyStore enables replay of registrations carrying an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the participation service with its collaborators.
func NewService(tx ports.Transactor, events ports.EventCatalog, pets ports.PetDirectory, opts ...Option) *Service {
	s := &Service{
		tx:     tx,
		events: events,
		pets:   pets,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// eligibility checks one pet and, in strict mode, refuses any warning.
func (s *Service) eligibility(pet domain.PetProfile, event *catalogdomain.Event) ([]domain.Warning, error) {
	warnings := domain.CheckEligibility(pet, event)
	if s.strict && len(warnings) > 0 {
		return warnings, fmt.Errorf("%w: %s", domain.ErrIneligible, warnings[0].Message)
	}
	return warnings, nil
}

// rebuildPlacements re-ranks a placement event and persists every award whose holder changed.
// Events without placement awards are left alone.
// lockedEvent locks the event and re-reads it inside the unit of work, so the open flag,
// deadline and capacity checked afterwards cannot change before commit.
func (s *Service) lockedEvent(ctx context.Context, store ports.Store, eventID int64) (*catalogdomain.Event, error) {
	if err := store.LockEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.events.GetEvent(store.Join(ctx), eventID)
}

func rebuildPlacements(ctx context.Context, store ports.Store, eventID int64) ([]domain.Placement, []*domain.Award, error) {
	awards, err := store.ListAwards(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := store.ListEventEntries(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	ranking := domain.Rank(entries)
	if domain.StyleOf(awards) != domain.AwardStylePlacement {
		return ranking, awards, nil
	}
	for _, award := range domain.Rebind(awards, ranking) {
		if err := store.UpdateAward(ctx, award); err != nil {
			return nil, nil, err
		}
	}
	return ranking, awards, nil
}

var _ ports.Service = (*Service)(nil)
