//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "petshow-api"
	ConsumerName = "owner-portal"

	StateOpenEvent      = "owner 1 has pet 101 and event 201 is open"
	StateFullEvent      = "event 202 is full"
	StateRegistrationID = "registration 1 pays for pet 101 at event 201"
)

const (
	OwnerID        int64 = 1
	PetID          int64 = 101
	OtherPetID     int64 = 102
	OpenEventID    int64 = 201
	FullEventID    int64 = 202
	RegistrationID int64 = 1
	BaseFee              = 300.0
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the owner portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleRegisterPayload is the body the portal sends to register pet 101 for event 201.
func ExampleRegisterPayload() map[string]any {
	return map[string]any{
		"petId":   PetID,
		"eventId": OpenEventID,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
