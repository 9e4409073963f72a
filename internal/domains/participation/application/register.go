package application

import (
	"context"
	"errors"
	"strings"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// Register enrolls a pet in an event, charging the first-pet or extra-pet price.
// Registration, entry and log row are written in one transaction.
func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	if err := validateRegister(input.OwnerID, input.PetID, input.EventID); err != nil {
		return nil, err
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		var err error
		fingerprint, err = FingerprintRegister(input)
		if err != nil {
			return nil, mapError(err)
		}
		record, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, mapError(err)
		}
		if record != nil {
			if record.RequestHash != fingerprint {
				return nil, domain.ErrIdempotencyConflict
			}
			return s.replayRegistration(ctx, input, record.RegistrationID)
		}
	}

	pet, event, err := s.ownedPetAndEvent(ctx, input.OwnerID, input.PetID, input.EventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.eligibility(*pet, event); err != nil {
		return nil, err
	}

	now := s.clock()
	registeredOn := input.RegistrationDate
	if registeredOn.IsZero() {
		registeredOn = now
	}

	var result *types.RegistrationResult
	err = s.tx.RunInTx(ctx, func(store ports.Store) error {
		event, err := s.lockedEvent(ctx, store, input.EventID)
		if err != nil {
			return err
		}
		if !event.Open {
			return domain.ErrEventClosed
		}
		warnings, err := s.eligibility(*pet, event)
		if err != nil {
			return err
		}
		existing, err := store.FindPaidEntry(ctx, pet.ID, event.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyRegistered
		}
		if !event.AcceptsRegistrationOn(registeredOn) {
			return domain.ErrDeadlinePassed
		}
		participants, err := store.CountPaidPets(ctx, event.ID)
		if err != nil {
			return err
		}
		if !domain.NewStanding(event.ID, participants, event.MaxParticipants).HasRoomFor(1) {
			return domain.ErrEventFull
		}
		ownerPets, err := store.CountOwnerPaidPets(ctx, input.OwnerID, event.ID)
		if err != nil {
			return err
		}
		amount, discounted := domain.PriceForNewRegistration(event, ownerPets)

		reg := domain.NewRegistration(input.OwnerID, event.ID, registeredOn, amount, now)
		if err := store.CreateRegistration(ctx, reg); err != nil {
			return err
		}
		entry := domain.NewEntry(reg.ID, pet.ID, event.ID)
		if err := store.CreateEntry(ctx, entry); err != nil {
			return err
		}
		if err := store.AppendLog(ctx, domain.PaidLog(reg, now)); err != nil {
			return err
		}
		result = &types.RegistrationResult{
			Registration: reg,
			Entry:        entry,
			Amount:       reg.TotalPaid,
			Discounted:   discounted,
			Warnings:     warnings,
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}

	if key != "" && s.idempotency != nil {
		_, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:            key,
			RequestHash:    fingerprint,
			RegistrationID: result.Registration.ID,
		})
		if err != nil {
			return nil, mapError(err)
		}
	}
	return result, nil
}

// QuoteRegistration previews what Register would charge and report, without writing.
func (s *Service) QuoteRegistration(ctx context.Context, input types.QuoteRegistrationInput) (*types.RegistrationQuote, error) {
	if err := validateRegister(input.OwnerID, input.PetID, input.EventID); err != nil {
		return nil, err
	}
	pet, event, err := s.ownedPetAndEvent(ctx, input.OwnerID, input.PetID, input.EventID)
	if err != nil {
		return nil, err
	}
	quote := &types.RegistrationQuote{
		EventID:        event.ID,
		PetID:          pet.ID,
		Warnings:       domain.CheckEligibility(*pet, event),
		Open:           event.Open,
		DeadlinePassed: !event.AcceptsRegistrationOn(s.clock()),
	}
	err = s.tx.RunInTx(ctx, func(store ports.Store) error {
		participants, err := store.CountPaidPets(ctx, event.ID)
		if err != nil {
			return err
		}
		ownerPets, err := store.CountOwnerPaidPets(ctx, input.OwnerID, event.ID)
		if err != nil {
			return err
		}
		existing, err := store.FindPaidEntry(ctx, pet.ID, event.ID)
		if err != nil {
			return err
		}
		quote.Registered = existing != nil
		quote.Standing = domain.NewStanding(event.ID, participants, event.MaxParticipants)
		quote.Amount, quote.Discounted = domain.PriceForNewRegistration(event, ownerPets)
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return quote, nil
}

func (s *Service) ownedPetAndEvent(ctx context.Context, ownerID, petID, eventID int64) (*domain.PetProfile, *catalogdomain.Event, error) {
	pet, err := s.pets.GetPet(ctx, petID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	if pet.OwnerID != ownerID {
		return nil, nil, domain.ErrPetNotOwned
	}
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return pet, event, nil
}

// replayRegistration rebuilds the result of an earlier call with the same idempotency key.
func (s *Service) replayRegistration(ctx context.Context, input types.RegisterInput, registrationID int64) (*types.RegistrationResult, error) {
	var result *types.RegistrationResult
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		reg, err := store.GetRegistration(ctx, registrationID, false)
		if err != nil {
			return err
		}
		entries, err := store.ListEntriesByRegistration(ctx, reg.ID)
		if err != nil {
			return err
		}
		result = &types.RegistrationResult{
			Registration: reg,
			Amount:       reg.TotalPaid,
			Replayed:     true,
		}
		for _, entry := range entries {
			if entry.PetID == input.PetID {
				result.Entry = entry
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return nil, domain.ErrIdempotencyConflict
		}
		return nil, mapError(err)
	}
	if event, err := s.events.GetEvent(ctx, result.Registration.EventID); err == nil {
		result.Discounted = result.Registration.EventID == input.EventID && result.Amount < event.BaseFee
	}
	return result, nil
}

func validateRegister(ownerID, petID, eventID int64) error {
	switch {
	case ownerID <= 0:
		return invalid("owner id must be greater than zero")
	case petID <= 0:
		return invalid("pet id must be greater than zero")
	case eventID <= 0:
		return invalid("event id must be greater than zero")
	}
	return nil
}
