package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
)

type normalizedRegisterInput struct {
	OwnerID          int64  `json:"ownerId"`
	PetID            int64  `json:"petId"`
	EventID          int64  `json:"eventId"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

// FingerprintRegister builds a deterministic hash of the register payload, excluding the idempotency key.
func FingerprintRegister(input types.RegisterInput) (string, error) {
	normalized := normalizedRegisterInput{
		OwnerID: input.OwnerID,
		PetID:   input.PetID,
		EventID: input.EventID,
	}
	if !input.RegistrationDate.IsZero() {
		normalized.RegistrationDate = input.RegistrationDate.UTC().Format("2006-01-02")
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
