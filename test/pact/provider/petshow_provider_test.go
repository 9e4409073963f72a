//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/petshow-api/test/pact"

	showserver "github.com/Apurer/petshow-api/go"
	catalogmemory "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/petshow-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	ownermemory "github.com/Apurer/petshow-api/internal/domains/owners/adapters/memory"
	ownerobs "github.com/Apurer/petshow-api/internal/domains/owners/adapters/observability"
	ownerapp "github.com/Apurer/petshow-api/internal/domains/owners/application"
	participationdirectory "github.com/Apurer/petshow-api/internal/domains/participation/adapters/directory"
	participationmemory "github.com/Apurer/petshow-api/internal/domains/participation/adapters/memory"
	participationobs "github.com/Apurer/petshow-api/internal/domains/participation/adapters/observability"
	participationworkflows "github.com/Apurer/petshow-api/internal/domains/participation/adapters/workflows"
	participationapp "github.com/Apurer/petshow-api/internal/domains/participation/application"
	participationtypes "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	participationports "github.com/Apurer/petshow-api/internal/domains/participation/ports"
	petsmemory "github.com/Apurer/petshow-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/petshow-api/internal/domains/pets/adapters/observability"
	petsapp "github.com/Apurer/petshow-api/internal/domains/pets/application"
	petsdomain "github.com/Apurer/petshow-api/internal/domains/pets/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestPetshowProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOpenEvent: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateFullEvent: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.register(t, pacttest.OtherPetID, pacttest.FullEventID)
			}
			return nil, nil
		},
		pacttest.StateRegistrationID: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.register(t, pacttest.PetID, pacttest.OpenEventID)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a fresh in-memory world for every provider state.
type contractProviderApp struct {
	mu            sync.RWMutex
	router        http.Handler
	participation participationports.Service
	server        *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	catalogRepo := catalogmemory.NewRepository()
	petRepo := petsmemory.NewRepository()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, seed := range []struct {
		id       int64
		capacity int
	}{{pacttest.OpenEventID, 5}, {pacttest.FullEventID, 1}} {
		_, err := catalogRepo.SaveEvent(ctx, &catalogdomain.Event{
			ID:                   seed.id,
			Name:                 "Pact Show",
			Date:                 today.AddDate(0, 0, 60),
			RegistrationDeadline: today.AddDate(0, 0, 30),
			MaxParticipants:      seed.capacity,
			Open:                 true,
			BaseFee:              pacttest.BaseFee,
		})
		require.NoError(t, err)
	}
	for _, id := range []int64{pacttest.PetID, pacttest.OtherPetID} {
		pet, err := petsdomain.NewPet(id, pacttest.OwnerID, "Pact Pup", catalogdomain.SizeMedium, 12)
		require.NoError(t, err)
		_, err = petRepo.Save(ctx, pet)
		require.NoError(t, err)
	}

	participation := participationobs.New(participationapp.NewService(
		participationmemory.NewStore(),
		participationdirectory.NewEventCatalog(catalogRepo),
		participationdirectory.NewPetDirectory(petRepo),
		participationapp.WithIdempotencyStore(participationmemory.NewIdempotencyStore()),
	))
	handlers := showserver.ApiHandleFunctions{
		OwnerAPI:         showserver.NewOwnerAPI(ownerobs.New(ownerapp.NewService(ownermemory.NewRepository()))),
		EventAPI:         showserver.NewEventAPI(catalogobs.New(catalogapp.NewService(catalogRepo))),
		PetAPI:           showserver.NewPetAPI(petsobs.New(petsapp.NewService(petRepo, petsapp.WithParticipationCleaner(participation)))),
		RegistrationAPI:  showserver.NewRegistrationAPI(participation, participationworkflows.NewInlineParticipationWorkflows(participation)),
		ParticipationAPI: showserver.NewParticipationAPI(participation),
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.router = showserver.NewRouter(handlers)
	a.participation = participation
}

func (a *contractProviderApp) register(t testing.TB, petID, eventID int64) {
	t.Helper()
	a.mu.RLock()
	service := a.participation
	a.mu.RUnlock()
	_, err := service.Register(context.Background(), participationtypes.RegisterInput{
		OwnerID: pacttest.OwnerID,
		PetID:   petID,
		EventID: eventID,
	})
	require.NoError(t, err)
}
