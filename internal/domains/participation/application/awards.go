package application

import (
	"context"
	"strings"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

const defaultAwardDescription = "Special award"

// SeedAwards creates the placement or special award rows of an event.
func (s *Service) SeedAwards(ctx context.Context, input types.SeedAwardsInput) ([]*domain.Award, error) {
	if input.EventID <= 0 {
		return nil, invalid("event id must be greater than zero")
	}
	if len(input.Awards) == 0 {
		return nil, invalid("at least one award is required")
	}
	if _, err := s.events.GetEvent(ctx, input.EventID); err != nil {
		return nil, mapError(err)
	}
	var created []*domain.Award
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		existing, err := store.ListAwards(ctx, input.EventID)
		if err != nil {
			return err
		}
		if err := domain.CheckSeeds(existing, input.Awards); err != nil {
			return err
		}
		for _, seed := range input.Awards {
			award := &domain.Award{
				EventID:     input.EventID,
				Special:     seed.Special,
				Name:        strings.TrimSpace(seed.Name),
				Description: seed.Description,
			}
			if err := store.CreateAward(ctx, award); err != nil {
				return err
			}
			created = append(created, award)
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// AssignAward binds the first unassigned special award with the given name to a pet entered in the event.
func (s *Service) AssignAward(ctx context.Context, input types.AssignAwardInput) (*domain.Award, error) {
	name := strings.TrimSpace(input.AwardName)
	switch {
	case input.EventID <= 0:
		return nil, invalid("event id must be greater than zero")
	case input.PetID <= 0:
		return nil, invalid("pet id must be greater than zero")
	case name == "":
		return nil, mapError(domain.ErrEmptyAwardName)
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = defaultAwardDescription
	}
	today := catalogdomain.DateOf(s.clock())

	var assigned *domain.Award
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		awards, err := specialAwards(ctx, store, input.EventID)
		if err != nil {
			return err
		}
		entered, err := petEntered(ctx, store, input.EventID, input.PetID)
		if err != nil {
			return err
		}
		if !entered {
			return domain.ErrEntryNotFound
		}
		for _, award := range awards {
			if !award.Assigned() && strings.EqualFold(award.Name, name) {
				award.AssignTo(input.PetID, description, today)
				assigned = award
				return store.UpdateAward(ctx, award)
			}
		}
		return domain.ErrAwardNotFound
	})
	if err != nil {
		return nil, mapError(err)
	}
	return assigned, nil
}

// ClearAward unbinds the pet's special awards at the event, narrowed by name when one is given.
// It returns how many rows were cleared.
func (s *Service) ClearAward(ctx context.Context, input types.ClearAwardInput) (int, error) {
	switch {
	case input.EventID <= 0:
		return 0, invalid("event id must be greater than zero")
	case input.PetID <= 0:
		return 0, invalid("pet id must be greater than zero")
	}
	name := strings.TrimSpace(input.AwardName)
	cleared := 0
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		awards, err := specialAwards(ctx, store, input.EventID)
		if err != nil {
			return err
		}
		for _, award := range awards {
			if !award.HeldBy(input.PetID) {
				continue
			}
			if name != "" && !strings.EqualFold(award.Name, name) {
				continue
			}
			award.Clear()
			if err := store.UpdateAward(ctx, award); err != nil {
				return err
			}
			cleared++
		}
		return nil
	})
	if err != nil {
		return 0, mapError(err)
	}
	return cleared, nil
}

func specialAwards(ctx context.Context, store ports.Store, eventID int64) ([]*domain.Award, error) {
	awards, err := store.ListAwards(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if domain.StyleOf(awards) != domain.AwardStyleSpecial {
		return nil, domain.ErrNotSpecialEvent
	}
	return awards, nil
}

func petEntered(ctx context.Context, store ports.Store, eventID, petID int64) (bool, error) {
	entries, err := store.ListEventEntries(ctx, eventID)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.PetID == petID {
			return true, nil
		}
	}
	return false, nil
}
