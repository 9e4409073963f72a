package application

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/adapters/directory"
	"github.com/Apurer/petshow-api/internal/domains/participation/adapters/memory"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
	petsmemory "github.com/Apurer/petshow-api/internal/domains/pets/adapters/memory"
	petsdomain "github.com/Apurer/petshow-api/internal/domains/pets/domain"
)

var baseToday = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	ctx     context.Context
	svc     *Service
	store   *memory.Store
	catalog *catalogmemory.Repository
	pets    *petsmemory.Repository
	today   time.Time
}

func newFixture(t require.TestingT, opts ...Option) *fixture {
	f := &fixture{
		ctx:     context.Background(),
		store:   memory.NewStore(),
		catalog: catalogmemory.NewRepository(),
		pets:    petsmemory.NewRepository(),
		today:   baseToday,
	}
	opts = append([]Option{WithClock(func() time.Time { return f.today })}, opts...)
	f.svc = NewService(f.store, directory.NewEventCatalog(f.catalog), directory.NewPetDirectory(f.pets), opts...)
	return f
}

// withTx swaps the transactor, keeping the fixture's catalog, pets and clock.
func (f *fixture) withTx(tx ports.Transactor) *Service {
	svc := *f.svc
	svc.tx = tx
	return &svc
}

// event stores an open event 20 days out with a deadline 14 days out.
func (f *fixture) event(t require.TestingT, baseFee, discount float64, mutate ...func(*catalogdomain.Event)) *catalogdomain.Event {
	event := &catalogdomain.Event{
		Name:                 "County Show",
		Date:                 f.today.AddDate(0, 0, 20),
		RegistrationDeadline: f.today.AddDate(0, 0, 14),
		Location:             "Fairground",
		MaxParticipants:      10,
		Open:                 true,
		BaseFee:              baseFee,
		ExtraPetDiscount:     discount,
	}
	for _, m := range mutate {
		m(event)
	}
	event.Normalize()
	saved, err := f.catalog.SaveEvent(f.ctx, event)
	require.NoError(t, err)
	return saved
}

func (f *fixture) pet(t require.TestingT, ownerID int64, name string) int64 {
	pet, err := petsdomain.NewPet(0, ownerID, name, catalogdomain.SizeMedium, 12)
	require.NoError(t, err)
	saved, err := f.pets.Save(f.ctx, pet)
	require.NoError(t, err)
	return saved.Entity.ID
}

func (f *fixture) logs(t require.TestingT, filter domain.LogFilter) []*domain.LogEntry {
	rows, err := f.svc.ListLog(f.ctx, filter)
	require.NoError(t, err)
	return rows
}

// failingLogTx wraps a transactor so every log append fails after the other writes went through.
type failingLogTx struct {
	inner ports.Transactor
}

func (f failingLogTx) RunInTx(ctx context.Context, fn func(ports.Store) error) error {
	return f.inner.RunInTx(ctx, func(store ports.Store) error {
		return fn(failingLogStore{Store: store})
	})
}

type failingLogStore struct {
	ports.Store
}

func (failingLogStore) AppendLog(context.Context, *domain.LogEntry) error {
	return errors.New("disk full")
}

// racingTx applies a concurrent catalog change just before the unit of work starts.
type racingTx struct {
	inner  ports.Transactor
	before func()
}

func (r racingTx) RunInTx(ctx context.Context, fn func(ports.Store) error) error {
	r.before()
	return r.inner.RunInTx(ctx, fn)
}

// updateEvent rewrites a stored event the way an organiser edit would.
func (f *fixture) updateEvent(t require.TestingT, id int64, mutate func(*catalogdomain.Event)) {
	event, err := f.catalog.GetEvent(f.ctx, id)
	require.NoError(t, err)
	mutate(event)
	_, err = f.catalog.SaveEvent(f.ctx, event)
	require.NoError(t, err)
}

func floatPtr(v float64) *float64 { return &v }
