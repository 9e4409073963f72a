package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

var (
	// ErrInvalidInput signals the request was rejected before any store access.
	ErrInvalidInput = errors.New("invalid participation input")
	// ErrStoreTransactionFailed wraps store failures. The transaction has already rolled back.
	ErrStoreTransactionFailed = errors.New("store transaction failed")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrStoreTransactionFailed) {
		return err
	}
	if errors.Is(err, domain.ErrInvalidAttendance) || errors.Is(err, domain.ErrEmptyAwardName) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if domain.IsKind(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreTransactionFailed, err)
}
