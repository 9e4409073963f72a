package domain

import "time"

// Action names a participation log row.
type Action string

const (
	ActionPaid        Action = "Paid"
	ActionModified    Action = "Modified"
	ActionTransferred Action = "Transferred"
	ActionCancelled   Action = "Cancelled"
	ActionNoShow      Action = "No Show Logged"
)

const (
	ReasonNewRegistration = "New registration"
	ReasonTransfer        = "Event transfer"
	ReasonWithdrawal      = "Owner withdrew from event"
)

// LogEntry is an append-only audit row. It is never updated or deleted.
type LogEntry struct {
	ID              int64
	RegistrationID  int64
	Action          Action
	At              time.Time
	OriginalEventID int64
	NewEventID      *int64
	Reason          string
	Refund          float64
	TopUp           float64
}

// PaidLog records a new registration.
func PaidLog(reg *Registration, at time.Time) *LogEntry {
	return &LogEntry{
		RegistrationID:  reg.ID,
		Action:          ActionPaid,
		At:              at,
		OriginalEventID: reg.EventID,
		Reason:          ReasonNewRegistration,
	}
}

// TransferLog records a move between events with the settled amounts.
func TransferLog(registrationID, fromEventID, toEventID int64, quote TransferQuote, reason string, at time.Time) *LogEntry {
	if reason == "" {
		reason = ReasonTransfer
	}
	target := toEventID
	return &LogEntry{
		RegistrationID:  registrationID,
		Action:          ActionTransferred,
		At:              at,
		OriginalEventID: fromEventID,
		NewEventID:      &target,
		Reason:          reason,
		Refund:          quote.Refund,
		TopUp:           quote.TopUp,
	}
}

// CancelLog records a withdrawal and its refund.
func CancelLog(reg *Registration, refund Refund, reason string, at time.Time) *LogEntry {
	if reason == "" {
		reason = ReasonWithdrawal
	}
	return &LogEntry{
		RegistrationID:  reg.ID,
		Action:          ActionCancelled,
		At:              at,
		OriginalEventID: reg.EventID,
		Reason:          reason,
		Refund:          refund.Amount,
	}
}

// LogFilter narrows log listings. Zero fields match everything.
type LogFilter struct {
	RegistrationID int64
	EventID        int64
}

// Matches reports whether the row passes the filter. The event filter covers both ends of a transfer.
func (f LogFilter) Matches(entry *LogEntry) bool {
	if f.RegistrationID > 0 && entry.RegistrationID != f.RegistrationID {
		return false
	}
	if f.EventID > 0 {
		if entry.OriginalEventID == f.EventID {
			return true
		}
		return entry.NewEventID != nil && *entry.NewEventID == f.EventID
	}
	return true
}
