package application

import (
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid pet input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidOwner) ||
		errors.Is(err, domain.ErrInvalidWeight) ||
		errors.Is(err, domain.ErrInvalidAge) ||
		errors.Is(err, domain.ErrInvalidSex) ||
		errors.Is(err, catalogdomain.ErrInvalidSize) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
