package participation

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/petshow-api/internal/domains/participation/application"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

const (
	// RegisterActivityName runs one registration transaction.
	RegisterActivityName = "participation.activities.Register"
	// WithdrawActivityName runs one withdrawal transaction.
	WithdrawActivityName = "participation.activities.Withdraw"

	codeInvalidInput = "INVALID_INPUT"
	codeStoreFailure = "STORE_TRANSACTION_FAILED"
)

// Activities runs the participation engine inside Temporal activities.
type Activities struct {
	service ports.Service
}

// NewActivities wires the participation service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// Register enrolls a pet. Business rejections are returned as non-retryable errors typed by their code.
func (a *Activities) Register(ctx context.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("register activity not initialized", "petId", input.PetID)
		return nil, errors.New("register activity not initialized")
	}
	logger.Info("Register activity started", "ownerId", input.OwnerID, "petId", input.PetID, "eventId", input.EventID)
	result, err := a.service.Register(ctx, input)
	if err != nil {
		logger.Error("Register activity failed", "petId", input.PetID, "eventId", input.EventID, "error", err)
		return nil, EncodeError(err)
	}
	logger.Info("Register activity completed", "registrationId", result.Registration.ID, "amount", result.Amount)
	return result, nil
}

// Withdraw cancels a registration and computes its refund.
func (a *Activities) Withdraw(ctx context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("withdraw activity not initialized", "registrationId", input.RegistrationID)
		return nil, errors.New("withdraw activity not initialized")
	}
	logger.Info("Withdraw activity started", "ownerId", input.OwnerID, "registrationId", input.RegistrationID)
	result, err := a.service.Withdraw(ctx, input)
	if err != nil {
		logger.Error("Withdraw activity failed", "registrationId", input.RegistrationID, "error", err)
		return nil, EncodeError(err)
	}
	logger.Info("Withdraw activity completed", "registrationId", input.RegistrationID, "refund", result.Refund.Amount)
	return result, nil
}

// EncodeError turns an engine error into a non-retryable Temporal application error
// whose type is the stable error code.
func EncodeError(err error) error {
	if err == nil {
		return nil
	}
	code := codeStoreFailure
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		code = codeInvalidInput
	default:
		if kind, ok := domain.CodeOf(err); ok {
			code = kind
		}
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), code, err)
}

// DecodeError restores the engine sentinel carried by a workflow failure so callers can match it with errors.Is.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	var kind error
	switch appErr.Type() {
	case codeInvalidInput:
		kind = application.ErrInvalidInput
	case codeStoreFailure:
		kind = application.ErrStoreTransactionFailed
	default:
		kind = domain.KindOf(appErr.Type())
	}
	if kind == nil {
		return err
	}
	return &decodedError{kind: kind, message: appErr.Error(), cause: err}
}

type decodedError struct {
	kind    error
	message string
	cause   error
}

func (e *decodedError) Error() string { return e.message }

func (e *decodedError) Unwrap() []error { return []error{e.kind, e.cause} }
