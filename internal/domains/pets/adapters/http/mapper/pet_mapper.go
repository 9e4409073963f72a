package mapper

import (
	"errors"
	"time"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	petsapp "github.com/Apurer/petshow-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/petshow-api/internal/domains/pets/application/types"
	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
	petsports "github.com/Apurer/petshow-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/petshow-api/internal/shared/errors"
)

// MutationPet captures inbound payloads for create/update flows while preserving field presence.
type MutationPet struct {
	Name     *string  `json:"name,omitempty"`
	Size     *string  `json:"size,omitempty"`
	Age      *int     `json:"age,omitempty"`
	Sex      *string  `json:"sex,omitempty"`
	WeightKg *float64 `json:"weightKg,omitempty"`
	Muzzle   *bool    `json:"muzzle,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	BreedIDs *[]int64 `json:"breedIds,omitempty"`
}

// Pet is the HTTP representation used for mapping between transport and domain responses.
type Pet struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	Age       int       `json:"age"`
	Sex       string    `json:"sex,omitempty"`
	WeightKg  float64   `json:"weightKg"`
	Muzzle    bool      `json:"muzzle"`
	Notes     string    `json:"notes,omitempty"`
	BreedIDs  []int64   `json:"breedIds"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPet maps a domain aggregate into a transport Pet.
func FromDomainPet(p *domain.Pet) Pet {
	return Pet{
		ID:       p.ID,
		OwnerID:  p.OwnerID,
		Name:     p.Name,
		Size:     p.Size.String(),
		Age:      p.Age,
		Sex:      string(p.Sex),
		WeightKg: p.WeightKg,
		Muzzle:   p.Muzzle,
		Notes:    p.Notes,
		BreedIDs: append([]int64{}, p.BreedIDs...),
	}
}

// ToMutationInput converts a mutation payload into an application mutation input while preserving field presence.
func ToMutationInput(model MutationPet) (petstypes.PetMutationInput, error) {
	input := petstypes.PetMutationInput{
		Name:     clone(model.Name),
		Age:      clone(model.Age),
		Sex:      clone(model.Sex),
		WeightKg: clone(model.WeightKg),
		Muzzle:   clone(model.Muzzle),
		Notes:    clone(model.Notes),
	}
	if model.Size != nil {
		size, err := catalogdomain.ParseSizeCategory(*model.Size)
		if err != nil {
			return petstypes.PetMutationInput{}, err
		}
		id := int(size)
		input.SizeID = &id
	}
	if model.BreedIDs != nil {
		ids := append([]int64{}, (*model.BreedIDs)...)
		input.BreedIDs = &ids
	}
	return input, nil
}

// FromProjection maps a projection into a transport pet enriched with metadata.
func FromProjection(projection *petstypes.PetProjection) Pet {
	pet := FromDomainPet(projection.Entity)
	pet.CreatedAt = projection.Metadata.CreatedAt
	pet.UpdatedAt = projection.Metadata.UpdatedAt
	return pet
}

// FromProjectionList maps a slice of projections into transport pets with metadata.
func FromProjectionList(list []*petstypes.PetProjection) []Pet {
	result := make([]Pet, 0, len(list))
	for _, projection := range list {
		result = append(result, FromProjection(projection))
	}
	return result
}

// ProblemFor maps pet errors to problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, petsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, petsapp.ErrInvalidInput), errors.Is(err, catalogdomain.ErrInvalidSize):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func clone[T any](value *T) *T {
	if value == nil {
		return nil
	}
	copy := *value
	return &copy
}
