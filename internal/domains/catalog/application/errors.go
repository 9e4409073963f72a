package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyEventName) ||
		errors.Is(err, domain.ErrInvalidCapacity) ||
		errors.Is(err, domain.ErrInvalidFee) ||
		errors.Is(err, domain.ErrMissingDate) ||
		errors.Is(err, domain.ErrDeadlineAfterDate) ||
		errors.Is(err, domain.ErrInvalidWeightSpan) ||
		errors.Is(err, domain.ErrInvalidSizeSpan) ||
		errors.Is(err, domain.ErrInvalidSize) ||
		errors.Is(err, domain.ErrEmptyBreedName) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
