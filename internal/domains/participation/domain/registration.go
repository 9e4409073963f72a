package domain

import (
	"time"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

// RegistrationStatus is the payment state of a registration.
type RegistrationStatus string

const (
	StatusPaid      RegistrationStatus = "Paid"
	StatusCancelled RegistrationStatus = "Cancelled"
)

// Registration binds an owner to one event for one or more pets. Rows are kept after cancellation.
type Registration struct {
	ID               int64
	OwnerID          int64
	EventID          int64
	RegistrationDate time.Time
	TotalPaid        float64
	PaidAt           time.Time
	Status           RegistrationStatus
	CancelledOn      *time.Time
}

// NewRegistration opens a paid registration.
func NewRegistration(ownerID, eventID int64, registeredOn time.Time, amount float64, paidAt time.Time) *Registration {
	return &Registration{
		OwnerID:          ownerID,
		EventID:          eventID,
		RegistrationDate: catalogdomain.DateOf(registeredOn),
		TotalPaid:        RoundCents(amount),
		PaidAt:           paidAt,
		Status:           StatusPaid,
	}
}

// IsPaid reports whether the registration still holds entries.
func (r *Registration) IsPaid() bool {
	return r != nil && r.Status == StatusPaid
}

// MoveTo points the registration at another event and settles the new total.
func (r *Registration) MoveTo(eventID int64, total float64, paidAt time.Time) error {
	if !r.IsPaid() {
		return ErrRegistrationNotPaid
	}
	if r.EventID == eventID {
		return ErrSameEventTransfer
	}
	r.EventID = eventID
	r.TotalPaid = RoundCents(total)
	r.PaidAt = paidAt
	return nil
}

// Cancel marks the registration withdrawn on the given day.
func (r *Registration) Cancel(day time.Time) error {
	if !r.IsPaid() {
		return ErrRegistrationNotPaid
	}
	cancelled := catalogdomain.DateOf(day)
	r.Status = StatusCancelled
	r.CancelledOn = &cancelled
	return nil
}

// Clone returns a deep copy.
func (r *Registration) Clone() *Registration {
	if r == nil {
		return nil
	}
	c := *r
	if r.CancelledOn != nil {
		v := *r.CancelledOn
		c.CancelledOn = &v
	}
	return &c
}
