package ports

import (
	"context"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

// EventCatalog reads event reference data. Missing events surface as domain.ErrEventNotFound.
type EventCatalog interface {
	GetEvent(ctx context.Context, id int64) (*catalogdomain.Event, error)
}

// PetDirectory reads pet snapshots. Missing pets surface as domain.ErrPetNotFound.
type PetDirectory interface {
	GetPet(ctx context.Context, id int64) (*domain.PetProfile, error)
}

// TopUpConfirmer asks the caller to accept an extra payment before a transfer commits.
type TopUpConfirmer interface {
	ConfirmTopUp(ctx context.Context, quote domain.TransferQuote) (bool, error)
}

// ConfirmFunc adapts a function to TopUpConfirmer.
type ConfirmFunc func(ctx context.Context, quote domain.TransferQuote) (bool, error)

// ConfirmTopUp calls f.
func (f ConfirmFunc) ConfirmTopUp(ctx context.Context, quote domain.TransferQuote) (bool, error) {
	return f(ctx, quote)
}

// AcceptTopUp returns a confirmer that always answers the same way.
func AcceptTopUp(accept bool) TopUpConfirmer {
	return ConfirmFunc(func(context.Context, domain.TransferQuote) (bool, error) {
		return accept, nil
	})
}
