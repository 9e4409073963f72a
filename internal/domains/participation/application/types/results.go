package types

import "github.com/Apurer/petshow-api/internal/domains/participation/domain"

// RegistrationResult is returned by a successful registration or its replay.
type RegistrationResult struct {
	Registration *domain.Registration
	Entry        *domain.Entry
	Amount       float64
	Discounted   bool
	Warnings     []domain.Warning
	Replayed     bool
}

// TransferResult carries the moved registration and the settlement.
type TransferResult struct {
	Registration *domain.Registration
	FromEventID  int64
	Entries      []*domain.Entry
	Quote        domain.TransferQuote
	Warnings     []domain.Warning
}

// TransferQuote previews the settlement of a transfer.
type TransferQuote struct {
	RegistrationID int64
	FromEventID    int64
	ToEventID      int64
	Quote          domain.TransferQuote
}

// WithdrawalResult carries the cancelled registration and its refund.
type WithdrawalResult struct {
	Registration   *domain.Registration
	Refund         domain.Refund
	RemovedEntries int
}

// WithdrawalQuote previews the refund tier for a registration.
type WithdrawalQuote struct {
	RegistrationID int64
	EventID        int64
	Refund         domain.Refund
}

// ScoreResult is the entry after scoring plus the rebuilt ranking and award board.
type ScoreResult struct {
	Entry   *domain.Entry
	Ranking []domain.Placement
	Awards  []*domain.Award
}

// RegistrationDetails is a registration with its current entries.
type RegistrationDetails struct {
	Registration *domain.Registration
	Entries      []*domain.Entry
}

// RegistrationQuote previews price, eligibility and room for a prospective registration.
type RegistrationQuote struct {
	EventID        int64
	PetID          int64
	Amount         float64
	Discounted     bool
	Warnings       []domain.Warning
	Standing       domain.Standing
	Open           bool
	DeadlinePassed bool
	Registered     bool
}
