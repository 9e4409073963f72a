package application

import (
	"context"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// Withdraw cancels a paid registration, frees its pets for re-registration and refunds by tier.
// The registration row is kept with status Cancelled.
func (s *Service) Withdraw(ctx context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error) {
	if err := validateRef(input.OwnerID, input.RegistrationID); err != nil {
		return nil, err
	}
	now := s.clock()

	var result *types.WithdrawalResult
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		reg, err := s.ownedRegistration(ctx, store, input.OwnerID, input.RegistrationID, true)
		if err != nil {
			return err
		}
		if !reg.IsPaid() {
			return domain.ErrRegistrationNotPaid
		}
		event, err := s.events.GetEvent(ctx, reg.EventID)
		if err != nil {
			return err
		}
		refund := domain.RefundFor(reg.TotalPaid, event.Date, now)
		removed, err := store.DeleteEntries(ctx, reg.ID, reg.EventID)
		if err != nil {
			return err
		}
		if err := reg.Cancel(now); err != nil {
			return err
		}
		if err := store.UpdateRegistration(ctx, reg); err != nil {
			return err
		}
		if _, _, err := rebuildPlacements(ctx, store, reg.EventID); err != nil {
			return err
		}
		if err := store.AppendLog(ctx, domain.CancelLog(reg, refund, input.Reason, now)); err != nil {
			return err
		}
		result = &types.WithdrawalResult{Registration: reg, Refund: refund, RemovedEntries: removed}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// QuoteWithdrawal previews the refund tier as of today.
func (s *Service) QuoteWithdrawal(ctx context.Context, ref types.RegistrationRef) (*types.WithdrawalQuote, error) {
	if err := validateRef(ref.OwnerID, ref.RegistrationID); err != nil {
		return nil, err
	}
	var reg *domain.Registration
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		var err error
		reg, err = s.ownedRegistration(ctx, store, ref.OwnerID, ref.RegistrationID, false)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	if !reg.IsPaid() {
		return nil, domain.ErrRegistrationNotPaid
	}
	event, err := s.events.GetEvent(ctx, reg.EventID)
	if err != nil {
		return nil, mapError(err)
	}
	return &types.WithdrawalQuote{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		Refund:         domain.RefundFor(reg.TotalPaid, event.Date, s.clock()),
	}, nil
}

func validateRef(ownerID, registrationID int64) error {
	switch {
	case ownerID <= 0:
		return invalid("owner id must be greater than zero")
	case registrationID <= 0:
		return invalid("registration id must be greater than zero")
	}
	return nil
}
