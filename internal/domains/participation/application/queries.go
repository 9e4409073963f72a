package application

import (
	"context"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// GetRegistration returns a registration of the acting owner with its entries.
func (s *Service) GetRegistration(ctx context.Context, ref types.RegistrationRef) (*types.RegistrationDetails, error) {
	if err := validateRef(ref.OwnerID, ref.RegistrationID); err != nil {
		return nil, err
	}
	var details *types.RegistrationDetails
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		reg, err := s.ownedRegistration(ctx, store, ref.OwnerID, ref.RegistrationID, false)
		if err != nil {
			return err
		}
		entries, err := store.ListEntriesByRegistration(ctx, reg.ID)
		if err != nil {
			return err
		}
		details = &types.RegistrationDetails{Registration: reg, Entries: entries}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return details, nil
}

// ListOwnerRegistrations returns the owner's registration board, newest first, with event names filled in.
func (s *Service) ListOwnerRegistrations(ctx context.Context, ownerID int64) ([]domain.RegistrationSummary, error) {
	if ownerID <= 0 {
		return nil, invalid("owner id must be greater than zero")
	}
	var summaries []domain.RegistrationSummary
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		var err error
		summaries, err = store.ListOwnerRegistrations(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	events := map[int64]*catalogdomain.Event{}
	for i := range summaries {
		event, ok := events[summaries[i].EventID]
		if !ok {
			event, err = s.events.GetEvent(ctx, summaries[i].EventID)
			if err != nil {
				return nil, mapError(err)
			}
			events[event.ID] = event
		}
		summaries[i].EventName = event.Name
		summaries[i].EventDate = event.Date
	}
	return summaries, nil
}

// EventStanding reports participants and free spots of an event.
func (s *Service) EventStanding(ctx context.Context, eventID int64) (*domain.Standing, error) {
	event, err := s.eventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var standing domain.Standing
	err = s.tx.RunInTx(ctx, func(store ports.Store) error {
		participants, err := store.CountPaidPets(ctx, event.ID)
		if err != nil {
			return err
		}
		standing = domain.NewStanding(event.ID, participants, event.MaxParticipants)
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &standing, nil
}

// EventEntries lists the entries of an event with attendance and results.
func (s *Service) EventEntries(ctx context.Context, eventID int64) ([]*domain.Entry, error) {
	if _, err := s.eventByID(ctx, eventID); err != nil {
		return nil, err
	}
	var entries []*domain.Entry
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		var err error
		entries, err = store.ListEventEntries(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}

// EventAwards lists the award board of an event.
func (s *Service) EventAwards(ctx context.Context, eventID int64) ([]*domain.Award, error) {
	if _, err := s.eventByID(ctx, eventID); err != nil {
		return nil, err
	}
	var awards []*domain.Award
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		var err error
		awards, err = store.ListAwards(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return awards, nil
}

// ListLog reads the participation log in insertion order.
func (s *Service) ListLog(ctx context.Context, filter domain.LogFilter) ([]*domain.LogEntry, error) {
	if filter.RegistrationID < 0 || filter.EventID < 0 {
		return nil, invalid("log filter ids must not be negative")
	}
	var rows []*domain.LogEntry
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		var err error
		rows, err = store.ListLogs(ctx, filter)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}

// ReleasePet removes a pet from every event it is entered in and rebuilds the affected rankings.
// Registrations and log rows are kept.
func (s *Service) ReleasePet(ctx context.Context, petID int64, remove func(ctx context.Context) error) error {
	if petID <= 0 {
		return invalid("pet id must be greater than zero")
	}
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		events, err := store.ReleasePet(ctx, petID)
		if err != nil {
			return err
		}
		for _, eventID := range events {
			if _, _, err := rebuildPlacements(ctx, store, eventID); err != nil {
				return err
			}
		}
		if remove == nil {
			return nil
		}
		return remove(store.Join(ctx))
	})
	return mapError(err)
}

func (s *Service) eventByID(ctx context.Context, eventID int64) (*catalogdomain.Event, error) {
	if eventID <= 0 {
		return nil, invalid("event id must be greater than zero")
	}
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, mapError(err)
	}
	return event, nil
}
