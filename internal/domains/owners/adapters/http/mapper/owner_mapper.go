package mapper

import (
	"errors"

	ownersapp "github.com/Apurer/petshow-api/internal/domains/owners/application"
	"github.com/Apurer/petshow-api/internal/domains/owners/domain"
	ownersports "github.com/Apurer/petshow-api/internal/domains/owners/ports"
	apierrors "github.com/Apurer/petshow-api/internal/shared/errors"
)

// Owner is the HTTP representation of an owner profile.
type Owner struct {
	ID            int64  `json:"id,omitempty"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// ToDomainOwner maps a transport owner into the domain model. Validation happens in the service.
func ToDomainOwner(input Owner) *domain.Owner {
	return &domain.Owner{
		ID:            input.ID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		ContactNumber: input.ContactNumber,
	}
}

// FromDomainOwner maps a domain owner into its transport form.
func FromDomainOwner(owner *domain.Owner) Owner {
	return Owner{
		ID:            owner.ID,
		FirstName:     owner.FirstName,
		LastName:      owner.LastName,
		Email:         owner.Email,
		ContactNumber: owner.ContactNumber,
	}
}

// FromDomainOwnerList maps a slice of owners.
func FromDomainOwnerList(list []*domain.Owner) []Owner {
	result := make([]Owner, 0, len(list))
	for _, owner := range list {
		result = append(result, FromDomainOwner(owner))
	}
	return result
}

// ProblemFor maps owner errors to problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ownersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ownersports.ErrDuplicateEmail):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ownersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
