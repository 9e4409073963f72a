package ports

import (
	"context"

	pettypes "github.com/Apurer/petshow-api/internal/domains/pets/application/types"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	AddPet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error)
	UpdatePet(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error)
	GetPet(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*pettypes.PetProjection, error)
	DeletePet(ctx context.Context, input pettypes.PetIdentifier) error
}
