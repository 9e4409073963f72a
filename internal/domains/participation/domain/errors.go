package domain

import "errors"

// Workflow outcomes returned to callers as typed results.
var (
	ErrEventClosed             = errors.New("event is not open for registration")
	ErrAlreadyRegistered       = errors.New("pet already holds a paid entry for this event")
	ErrDeadlinePassed          = errors.New("registration deadline has passed")
	ErrEventFull               = errors.New("event has reached its maximum participants")
	ErrRegistrationNotFound    = errors.New("registration not found")
	ErrRegistrationNotPaid     = errors.New("registration is not in paid status")
	ErrSameEventTransfer       = errors.New("registration is already for the target event")
	ErrPetAlreadyInTargetEvent = errors.New("pet already holds a paid entry in the target event")
	ErrTransferPaymentDeclined = errors.New("additional payment for transfer was declined")
	ErrPetNotOwned             = errors.New("pet does not belong to the owner")
	ErrIneligible              = errors.New("pet does not meet the event eligibility limits")
	ErrEntryNotFound           = errors.New("entry not found")
	ErrNotPlacementEvent       = errors.New("event does not award placements")
	ErrNotSpecialEvent         = errors.New("event does not award special prizes")
	ErrAwardNotFound           = errors.New("no unassigned award with that name")
	ErrMixedAwardKinds         = errors.New("event cannot mix placement and special awards")
	ErrEmptyAwardName          = errors.New("award name is required")
	ErrInvalidAttendance       = errors.New("attendance status is invalid")
	ErrEventNotFound           = errors.New("event not found")
	ErrPetNotFound             = errors.New("pet not found")
	ErrIdempotencyConflict     = errors.New("idempotency key reused with a different request")
)

// kinds lists every error a workflow may surface unchanged, with a stable code for transports.
var kinds = []struct {
	err  error
	code string
}{
	{ErrEventClosed, "EVENT_CLOSED"},
	{ErrAlreadyRegistered, "ALREADY_REGISTERED"},
	{ErrDeadlinePassed, "DEADLINE_PASSED"},
	{ErrEventFull, "EVENT_FULL"},
	{ErrRegistrationNotFound, "REGISTRATION_NOT_FOUND"},
	{ErrRegistrationNotPaid, "REGISTRATION_NOT_PAID"},
	{ErrSameEventTransfer, "SAME_EVENT_TRANSFER"},
	{ErrPetAlreadyInTargetEvent, "PET_ALREADY_IN_TARGET_EVENT"},
	{ErrTransferPaymentDeclined, "TRANSFER_PAYMENT_DECLINED"},
	{ErrPetNotOwned, "PET_NOT_OWNED"},
	{ErrIneligible, "INELIGIBLE"},
	{ErrEntryNotFound, "ENTRY_NOT_FOUND"},
	{ErrNotPlacementEvent, "NOT_PLACEMENT_EVENT"},
	{ErrNotSpecialEvent, "NOT_SPECIAL_EVENT"},
	{ErrAwardNotFound, "AWARD_NOT_FOUND"},
	{ErrMixedAwardKinds, "MIXED_AWARD_KINDS"},
	{ErrEmptyAwardName, "EMPTY_AWARD_NAME"},
	{ErrInvalidAttendance, "INVALID_ATTENDANCE"},
	{ErrEventNotFound, "EVENT_NOT_FOUND"},
	{ErrPetNotFound, "PET_NOT_FOUND"},
	{ErrIdempotencyConflict, "IDEMPOTENCY_CONFLICT"},
}

// IsKind reports whether err carries one of the participation error kinds.
func IsKind(err error) bool {
	_, ok := CodeOf(err)
	return ok
}

// CodeOf returns the stable code of the first kind err carries.
func CodeOf(err error) (string, bool) {
	for _, kind := range kinds {
		if errors.Is(err, kind.err) {
			return kind.code, true
		}
	}
	return "", false
}

// KindOf resolves a code produced by CodeOf back to its sentinel, or nil when unknown.
func KindOf(code string) error {
	for _, kind := range kinds {
		if kind.code == code {
			return kind.err
		}
	}
	return nil
}
