package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	ErrEmptyFirstName = errors.New("first name is required")
	ErrEmptyLastName  = errors.New("last name is required")
	ErrInvalidEmail   = errors.New("email address is invalid")
)

// Owner is the person on whose behalf pets are entered into events.
type Owner struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
}

// NewOwner builds an owner ensuring required invariants.
func NewOwner(id int64, firstName, lastName string) (*Owner, error) {
	owner := &Owner{ID: id}
	if err := owner.Rename(firstName, lastName); err != nil {
		return nil, err
	}
	return owner, nil
}

// Rename trims and validates both name parts.
func (o *Owner) Rename(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return ErrEmptyFirstName
	}
	if lastName == "" {
		return ErrEmptyLastName
	}
	o.FirstName = firstName
	o.LastName = lastName
	return nil
}

// UpdateContact applies optional contact fields and validates the email when present.
func (o *Owner) UpdateContact(email, contactNumber string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if err := validate.Var(email, "email"); err != nil {
			return ErrInvalidEmail
		}
	}
	o.Email = email
	o.ContactNumber = strings.TrimSpace(contactNumber)
	return nil
}

// Validate enforces invariants on the aggregate.
func (o *Owner) Validate() error {
	if err := o.Rename(o.FirstName, o.LastName); err != nil {
		return err
	}
	return o.UpdateContact(o.Email, o.ContactNumber)
}

// FullName is the display name used on registration boards.
func (o *Owner) FullName() string {
	return o.FirstName + " " + o.LastName
}
