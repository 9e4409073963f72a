package application

import (
	"context"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// Transfer moves a paid registration and all of its pets to another event, settling the
// difference against the target's base fee. A top-up needs the confirmer's consent.
func (s *Service) Transfer(ctx context.Context, input types.TransferInput, confirm ports.TopUpConfirmer) (*types.TransferResult, error) {
	if err := validateTransfer(input.OwnerID, input.RegistrationID, input.NewEventID); err != nil {
		return nil, err
	}
	if _, err := s.events.GetEvent(ctx, input.NewEventID); err != nil {
		return nil, mapError(err)
	}
	now := s.clock()

	var result *types.TransferResult
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		reg, err := s.ownedRegistration(ctx, store, input.OwnerID, input.RegistrationID, true)
		if err != nil {
			return err
		}
		target, err := s.lockedEvent(ctx, store, input.NewEventID)
		if err != nil {
			return err
		}
		if err := checkTransferable(reg, target); err != nil {
			return err
		}
		entries, err := store.ListEntriesByRegistration(ctx, reg.ID)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			existing, err := store.FindPaidEntry(ctx, entry.PetID, target.ID)
			if err != nil {
				return err
			}
			if existing != nil && existing.RegistrationID != reg.ID {
				return domain.ErrPetAlreadyInTargetEvent
			}
		}
		warnings, err := s.transferWarnings(ctx, entries, target)
		if err != nil {
			return err
		}
		participants, err := store.CountPaidPets(ctx, target.ID)
		if err != nil {
			return err
		}
		if !domain.NewStanding(target.ID, participants, target.MaxParticipants).HasRoomFor(len(entries)) {
			return domain.ErrEventFull
		}

		quote := domain.PriceDeltaForTransfer(reg.TotalPaid, target.BaseFee)
		if quote.NeedsConfirmation() {
			if confirm == nil {
				return domain.ErrTransferPaymentDeclined
			}
			accepted, err := confirm.ConfirmTopUp(ctx, quote)
			if err != nil {
				return err
			}
			if !accepted {
				return domain.ErrTransferPaymentDeclined
			}
		}

		from := reg.EventID
		if err := reg.MoveTo(target.ID, quote.NewTotal, now); err != nil {
			return err
		}
		if err := store.UpdateRegistration(ctx, reg); err != nil {
			return err
		}
		if _, err := store.DeleteEntries(ctx, reg.ID, from); err != nil {
			return err
		}
		moved := make([]*domain.Entry, 0, len(entries))
		for _, old := range entries {
			entry := domain.NewEntry(reg.ID, old.PetID, target.ID)
			if err := store.CreateEntry(ctx, entry); err != nil {
				return err
			}
			moved = append(moved, entry)
		}
		if _, _, err := rebuildPlacements(ctx, store, from); err != nil {
			return err
		}
		if err := store.AppendLog(ctx, domain.TransferLog(reg.ID, from, target.ID, quote, input.Reason, now)); err != nil {
			return err
		}
		result = &types.TransferResult{
			Registration: reg,
			FromEventID:  from,
			Entries:      moved,
			Quote:        quote,
			Warnings:     warnings,
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// QuoteTransfer previews the settlement of a transfer against the registration's current total.
func (s *Service) QuoteTransfer(ctx context.Context, input types.QuoteTransferInput) (*types.TransferQuote, error) {
	if err := validateTransfer(input.OwnerID, input.RegistrationID, input.NewEventID); err != nil {
		return nil, err
	}
	target, err := s.events.GetEvent(ctx, input.NewEventID)
	if err != nil {
		return nil, mapError(err)
	}
	var quote *types.TransferQuote
	err = s.tx.RunInTx(ctx, func(store ports.Store) error {
		reg, err := s.ownedRegistration(ctx, store, input.OwnerID, input.RegistrationID, false)
		if err != nil {
			return err
		}
		if err := checkTransferable(reg, target); err != nil {
			return err
		}
		quote = &types.TransferQuote{
			RegistrationID: reg.ID,
			FromEventID:    reg.EventID,
			ToEventID:      target.ID,
			Quote:          domain.PriceDeltaForTransfer(reg.TotalPaid, target.BaseFee),
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return quote, nil
}

func checkTransferable(reg *domain.Registration, target *catalogdomain.Event) error {
	if !reg.IsPaid() {
		return domain.ErrRegistrationNotPaid
	}
	if reg.EventID == target.ID {
		return domain.ErrSameEventTransfer
	}
	if !target.Open {
		return domain.ErrEventClosed
	}
	return nil
}

// transferWarnings checks every moving pet against the target event.
func (s *Service) transferWarnings(ctx context.Context, entries []*domain.Entry, target *catalogdomain.Event) ([]domain.Warning, error) {
	var warnings []domain.Warning
	for _, entry := range entries {
		pet, err := s.pets.GetPet(ctx, entry.PetID)
		if err != nil {
			return nil, err
		}
		found, err := s.eligibility(*pet, target)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, found...)
	}
	return warnings, nil
}

// ownedRegistration hides registrations of other owners behind ErrRegistrationNotFound.
func (s *Service) ownedRegistration(ctx context.Context, store ports.Store, ownerID, id int64, forUpdate bool) (*domain.Registration, error) {
	reg, err := store.GetRegistration(ctx, id, forUpdate)
	if err != nil {
		return nil, err
	}
	if reg.OwnerID != ownerID {
		return nil, domain.ErrRegistrationNotFound
	}
	return reg, nil
}

func validateTransfer(ownerID, registrationID, eventID int64) error {
	switch {
	case ownerID <= 0:
		return invalid("owner id must be greater than zero")
	case registrationID <= 0:
		return invalid("registration id must be greater than zero")
	case eventID <= 0:
		return invalid("new event id must be greater than zero")
	}
	return nil
}
