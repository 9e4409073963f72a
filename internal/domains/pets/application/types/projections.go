package types

import (
	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
	"github.com/Apurer/petshow-api/internal/shared/projection"
)

// PetProjection transports a pet aggregate together with its persistence metadata.
type PetProjection = projection.Projection[*domain.Pet]
