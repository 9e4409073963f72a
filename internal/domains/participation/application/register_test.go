package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/adapters/memory"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

func TestRegister_PricesFirstAndSecondPet(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 300, 50)
	first, second := f.pet(t, 1, "Rex"), f.pet(t, 1, "Bella")

	res1, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: first, EventID: event.ID})
	require.NoError(t, err)
	require.Equal(t, 300.0, res1.Amount)
	require.False(t, res1.Discounted)
	require.Equal(t, domain.StatusPaid, res1.Registration.Status)
	require.Equal(t, domain.AttendanceRegistered, res1.Entry.Attendance)
	require.Equal(t, catalogdomain.DateOf(baseToday), res1.Registration.RegistrationDate)
	require.Equal(t, baseToday, res1.Registration.PaidAt)

	res2, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: second, EventID: event.ID})
	require.NoError(t, err)
	require.Equal(t, 250.0, res2.Amount)
	require.True(t, res2.Discounted)

	rows := f.logs(t, domain.LogFilter{EventID: event.ID})
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, domain.ActionPaid, row.Action)
		require.Equal(t, domain.ReasonNewRegistration, row.Reason)
		require.Zero(t, row.Refund)
		require.Zero(t, row.TopUp)
	}
}

func TestRegister_OtherOwnersDoNotShareDiscount(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 300, 50)

	_, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: f.pet(t, 1, "Rex"), EventID: event.ID})
	require.NoError(t, err)
	res, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 2, PetID: f.pet(t, 2, "Luna"), EventID: event.ID})
	require.NoError(t, err)
	require.Equal(t, 300.0, res.Amount)
}

func TestRegister_DeadlinePassedWritesNothing(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 300, 50)
	petID := f.pet(t, 1, "Rex")

	_, err := f.svc.Register(f.ctx, types.RegisterInput{
		OwnerID:          1,
		PetID:            petID,
		EventID:          event.ID,
		RegistrationDate: event.RegistrationDeadline.AddDate(0, 0, 1),
	})
	require.ErrorIs(t, err, domain.ErrDeadlinePassed)

	standing, err := f.svc.EventStanding(f.ctx, event.ID)
	require.NoError(t, err)
	require.Zero(t, standing.Participants)
	require.Empty(t, f.logs(t, domain.LogFilter{}))
	regs, err := f.svc.ListOwnerRegistrations(f.ctx, 1)
	require.NoError(t, err)
	require.Empty(t, regs)

	_, err = f.svc.Register(f.ctx, types.RegisterInput{
		OwnerID:          1,
		PetID:            petID,
		EventID:          event.ID,
		RegistrationDate: event.RegistrationDeadline,
	})
	require.NoError(t, err)
}

func TestRegister_Rejections(t *testing.T) {
	f := newFixture(t)
	open := f.event(t, 100, 0)
	closed := f.event(t, 100, 0, func(e *catalogdomain.Event) { e.Open = false })
	petID := f.pet(t, 1, "Rex")

	_, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: petID, EventID: closed.ID})
	require.ErrorIs(t, err, domain.ErrEventClosed)

	_, err = f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: petID, EventID: open.ID})
	require.NoError(t, err)
	_, err = f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: petID, EventID: open.ID})
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	_, err = f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 2, PetID: petID, EventID: open.ID})
	require.ErrorIs(t, err, domain.ErrPetNotOwned)

	_, err = f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: petID, EventID: 999})
	require.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: 999, EventID: open.ID})
	require.ErrorIs(t, err, domain.ErrPetNotFound)

	_, err = f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 0, PetID: petID, EventID: open.ID})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_EventFull(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 100, 0, func(e *catalogdomain.Event) { e.MaxParticipants = 1 })

	_, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: f.pet(t, 1, "Rex"), EventID: event.ID})
	require.NoError(t, err)
	_, err = f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 2, PetID: f.pet(t, 2, "Luna"), EventID: event.ID})
	require.ErrorIs(t, err, domain.ErrEventFull)
}

func TestRegister_EligibilityWarnings(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 100, 0, func(e *catalogdomain.Event) { e.MaxWeightKg = floatPtr(10) })
	petID := f.pet(t, 1, "Rex")

	res, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: petID, EventID: event.ID})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, domain.WarningWeightTooHigh, res.Warnings[0].Code)

	strict := newFixture(t, WithStrictEligibility(true))
	strictEvent := strict.event(t, 100, 0, func(e *catalogdomain.Event) { e.MaxWeightKg = floatPtr(10) })
	_, err = strict.svc.Register(strict.ctx, types.RegisterInput{OwnerID: 1, PetID: strict.pet(t, 1, "Rex"), EventID: strictEvent.ID})
	require.ErrorIs(t, err, domain.ErrIneligible)
	require.Empty(t, strict.logs(t, domain.LogFilter{}))
}

func TestRegister_IdempotencyKeyReplays(t *testing.T) {
	f := newFixture(t, WithIdempotencyStore(memory.NewIdempotencyStore()))
	event := f.event(t, 300, 50)
	petID := f.pet(t, 1, "Rex")
	input := types.RegisterInput{OwnerID: 1, PetID: petID, EventID: event.ID, IdempotencyKey: "key-1"}

	first, err := f.svc.Register(f.ctx, input)
	require.NoError(t, err)
	replay, err := f.svc.Register(f.ctx, input)
	require.NoError(t, err)
	require.True(t, replay.Replayed)
	require.Equal(t, first.Registration.ID, replay.Registration.ID)
	require.Equal(t, first.Entry.ID, replay.Entry.ID)
	require.Equal(t, 300.0, replay.Amount)
	require.Len(t, f.logs(t, domain.LogFilter{}), 1)

	other := input
	other.PetID = f.pet(t, 1, "Bella")
	_, err = f.svc.Register(f.ctx, other)
	require.ErrorIs(t, err, domain.ErrIdempotencyConflict)
}

func TestRegister_StoreFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 300, 50)
	petID := f.pet(t, 1, "Rex")

	svc := f.withTx(failingLogTx{inner: f.store})
	_, err := svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: petID, EventID: event.ID})
	require.ErrorIs(t, err, ErrStoreTransactionFailed)

	regs, err := f.svc.ListOwnerRegistrations(f.ctx, 1)
	require.NoError(t, err)
	require.Empty(t, regs)
	entries, err := f.svc.EventEntries(f.ctx, event.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestQuoteRegistration_PreviewsWithoutWriting(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 300, 50, func(e *catalogdomain.Event) { e.MaxParticipants = 3 })
	first, second := f.pet(t, 1, "Rex"), f.pet(t, 1, "Bella")
	_, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: first, EventID: event.ID})
	require.NoError(t, err)

	quote, err := f.svc.QuoteRegistration(f.ctx, types.QuoteRegistrationInput{OwnerID: 1, PetID: second, EventID: event.ID})
	require.NoError(t, err)
	require.Equal(t, 250.0, quote.Amount)
	require.True(t, quote.Discounted)
	require.True(t, quote.Open)
	require.False(t, quote.DeadlinePassed)
	require.False(t, quote.Registered)
	require.Equal(t, domain.Standing{EventID: event.ID, Participants: 1, MaxParticipants: 3, AvailableSpots: 2}, quote.Standing)
	require.Len(t, f.logs(t, domain.LogFilter{}), 1)
}

func TestRegister_ChecksEventAsOfTheLock(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 300, 0, func(e *catalogdomain.Event) { e.MaxParticipants = 2 })
	rex, bella, milo := f.pet(t, 1, "Rex"), f.pet(t, 2, "Bella"), f.pet(t, 3, "Milo")

	_, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: 1, PetID: rex, EventID: event.ID})
	require.NoError(t, err)

	shrink := f.withTx(racingTx{inner: f.store, before: func() {
		f.updateEvent(t, event.ID, func(e *catalogdomain.Event) { e.MaxParticipants = 1 })
	}})
	_, err = shrink.Register(f.ctx, types.RegisterInput{OwnerID: 2, PetID: bella, EventID: event.ID})
	require.ErrorIs(t, err, domain.ErrEventFull)

	closing := f.withTx(racingTx{inner: f.store, before: func() {
		f.updateEvent(t, event.ID, func(e *catalogdomain.Event) {
			e.MaxParticipants = 5
			e.Open = false
		})
	}})
	_, err = closing.Register(f.ctx, types.RegisterInput{OwnerID: 3, PetID: milo, EventID: event.ID})
	require.ErrorIs(t, err, domain.ErrEventClosed)

	standing, err := f.svc.EventStanding(f.ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, 1, standing.Participants)
}
