package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petshow-api/internal/domains/owners/domain"
)

// ErrInvalidInput signals the request violated an owner invariant.
var ErrInvalidInput = errors.New("invalid owner input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyFirstName) ||
		errors.Is(err, domain.ErrEmptyLastName) ||
		errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
