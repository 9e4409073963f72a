package participation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	catalogmemory "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/adapters/directory"
	"github.com/Apurer/petshow-api/internal/domains/participation/adapters/memory"
	"github.com/Apurer/petshow-api/internal/domains/participation/application"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	petsmemory "github.com/Apurer/petshow-api/internal/domains/pets/adapters/memory"
	petsdomain "github.com/Apurer/petshow-api/internal/domains/pets/domain"
	participationactivities "github.com/Apurer/petshow-api/internal/durable/temporal/activities/participation"
)

var today = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

type engine struct {
	activities *participationactivities.Activities
	eventID    int64
	petIDs     []int64
}

func newEngine(t *testing.T, capacity int) *engine {
	ctx := context.Background()
	catalog := catalogmemory.NewRepository()
	pets := petsmemory.NewRepository()
	event := &catalogdomain.Event{
		Name:                 "Summer Show",
		Date:                 today.AddDate(0, 0, 20),
		RegistrationDeadline: today.AddDate(0, 0, 14),
		MaxParticipants:      capacity,
		Open:                 true,
		BaseFee:              300,
		ExtraPetDiscount:     50,
	}
	event.Normalize()
	saved, err := catalog.SaveEvent(ctx, event)
	require.NoError(t, err)

	e := &engine{eventID: saved.ID}
	for _, name := range []string{"Rex", "Fido"} {
		pet, err := petsdomain.NewPet(0, 1, name, catalogdomain.SizeMedium, 12)
		require.NoError(t, err)
		stored, err := pets.Save(ctx, pet)
		require.NoError(t, err)
		e.petIDs = append(e.petIDs, stored.Entity.ID)
	}
	svc := application.NewService(memory.NewStore(), directory.NewEventCatalog(catalog), directory.NewPetDirectory(pets),
		application.WithClock(func() time.Time { return today }))
	e.activities = participationactivities.NewActivities(svc)
	return e
}

func (e *engine) env(s *testsuite.WorkflowTestSuite) *testsuite.TestWorkflowEnvironment {
	env := s.NewTestWorkflowEnvironment()
	Register(env, e.activities)
	return env
}

func TestRegistrationWorkflow_RegistersAndWithdraws(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	e := newEngine(t, 10)

	env := e.env(&suite)
	env.ExecuteWorkflow(RegistrationWorkflow, RegistrationWorkflowInput{
		Command: types.RegisterInput{OwnerID: 1, PetID: e.petIDs[0], EventID: e.eventID},
		TraceID: "trace-1",
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var registered types.RegistrationResult
	require.NoError(t, env.GetWorkflowResult(&registered))
	assert.Equal(t, 300.0, registered.Amount)
	assert.Equal(t, domain.StatusPaid, registered.Registration.Status)

	env = e.env(&suite)
	env.ExecuteWorkflow(WithdrawalWorkflow, WithdrawalWorkflowInput{
		Command: types.WithdrawInput{OwnerID: 1, RegistrationID: registered.Registration.ID},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var withdrawn types.WithdrawalResult
	require.NoError(t, env.GetWorkflowResult(&withdrawn))
	assert.Equal(t, 100, withdrawn.Refund.Percent)
	assert.Equal(t, 300.0, withdrawn.Refund.Amount)
	assert.Equal(t, domain.StatusCancelled, withdrawn.Registration.Status)
}

func TestRegistrationWorkflow_RejectionKeepsItsKind(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	e := newEngine(t, 1)

	env := e.env(&suite)
	env.ExecuteWorkflow(RegistrationWorkflow, RegistrationWorkflowInput{
		Command: types.RegisterInput{OwnerID: 1, PetID: e.petIDs[0], EventID: e.eventID},
	})
	require.NoError(t, env.GetWorkflowError())

	env = e.env(&suite)
	env.ExecuteWorkflow(RegistrationWorkflow, RegistrationWorkflowInput{
		Command: types.RegisterInput{OwnerID: 1, PetID: e.petIDs[1], EventID: e.eventID},
	})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.ErrorIs(t, participationactivities.DecodeError(err), domain.ErrEventFull)
}

func TestWithdrawalWorkflow_InvalidInputIsNotRetried(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	e := newEngine(t, 10)

	env := e.env(&suite)
	env.ExecuteWorkflow(WithdrawalWorkflow, WithdrawalWorkflowInput{Command: types.WithdrawInput{OwnerID: 1}})
	require.True(t, env.IsWorkflowCompleted())
	assert.ErrorIs(t, participationactivities.DecodeError(env.GetWorkflowError()), application.ErrInvalidInput)
}
