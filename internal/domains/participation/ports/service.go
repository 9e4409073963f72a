package ports

import (
	"context"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

// Service exposes the registration and participation lifecycle.
type Service interface {
	Register(ctx context.Context, input types.RegisterInput) (*types.RegistrationResult, error)
	QuoteRegistration(ctx context.Context, input types.QuoteRegistrationInput) (*types.RegistrationQuote, error)
	Transfer(ctx context.Context, input types.TransferInput, confirm TopUpConfirmer) (*types.TransferResult, error)
	QuoteTransfer(ctx context.Context, input types.QuoteTransferInput) (*types.TransferQuote, error)
	Withdraw(ctx context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error)
	QuoteWithdrawal(ctx context.Context, ref types.RegistrationRef) (*types.WithdrawalQuote, error)

	SetAttendance(ctx context.Context, input types.AttendanceInput) (*domain.Entry, error)
	RecordScore(ctx context.Context, input types.RecordScoreInput) (*types.ScoreResult, error)
	SeedAwards(ctx context.Context, input types.SeedAwardsInput) ([]*domain.Award, error)
	AssignAward(ctx context.Context, input types.AssignAwardInput) (*domain.Award, error)
	ClearAward(ctx context.Context, input types.ClearAwardInput) (int, error)

	GetRegistration(ctx context.Context, ref types.RegistrationRef) (*types.RegistrationDetails, error)
	ListOwnerRegistrations(ctx context.Context, ownerID int64) ([]domain.RegistrationSummary, error)
	EventStanding(ctx context.Context, eventID int64) (*domain.Standing, error)
	EventEntries(ctx context.Context, eventID int64) ([]*domain.Entry, error)
	EventAwards(ctx context.Context, eventID int64) ([]*domain.Award, error)
	ListLog(ctx context.Context, filter domain.LogFilter) ([]*domain.LogEntry, error)
	// ReleasePet removes the pet from every event and then calls remove with a context bound to
	// the same transaction. An error from remove rolls the release back.
	ReleasePet(ctx context.Context, petID int64, remove func(ctx context.Context) error) error
}

// WorkflowOrchestrator runs the register and withdraw use cases, durably when a workflow engine is wired.
type WorkflowOrchestrator interface {
	Register(ctx context.Context, input types.RegisterInput) (*types.RegistrationResult, error)
	Withdraw(ctx context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error)
}
