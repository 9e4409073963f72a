package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOwner_TrimsNames(t *testing.T) {
	owner, err := NewOwner(0, "  Ada ", " Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", owner.FullName())

	_, err = NewOwner(0, " ", "Lovelace")
	assert.ErrorIs(t, err, ErrEmptyFirstName)
	_, err = NewOwner(0, "Ada", "")
	assert.ErrorIs(t, err, ErrEmptyLastName)
}

func TestUpdateContact_Email(t *testing.T) {
	cases := []struct {
		name  string
		email string
		want  error
	}{
		{name: "empty is allowed", email: "", want: nil},
		{name: "plain address", email: "ada@example.com", want: nil},
		{name: "surrounding spaces trimmed", email: "  ada@example.com ", want: nil},
		{name: "missing domain", email: "ada@", want: ErrInvalidEmail},
		{name: "display name form", email: "Ada <ada@example.com>", want: ErrInvalidEmail},
		{name: "no at sign", email: "ada.example.com", want: ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner := &Owner{FirstName: "Ada", LastName: "Lovelace"}
			err := owner.UpdateContact(tc.email, " 555-0100 ")
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "555-0100", owner.ContactNumber)
		})
	}
}
