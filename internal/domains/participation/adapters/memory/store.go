package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

var (
	_ ports.Transactor = (*Store)(nil)
	_ ports.Store      = (*txStore)(nil)
)

const defaultTxTimeout = 5 * time.Second

// Store keeps participation state in memory. One mutex serialises transactions; each
// transaction works on a copy that replaces the live state only when it succeeds.
type Store struct {
	mu      sync.Mutex
	state   *state
	timeout time.Duration
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{state: newState(), timeout: defaultTxTimeout}
}

// WithTimeout bounds transactions whose context carries no deadline.
func (s *Store) WithTimeout(timeout time.Duration) {
	if timeout > 0 {
		s.timeout = timeout
	}
}

// RunInTx runs fn against a private copy of the state and commits it when fn returns nil.
func (s *Store) RunInTx(ctx context.Context, fn func(store ports.Store) error) error {
	if fn == nil {
		return errors.New("transaction function is nil")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	working := s.state.clone()
	if err := fn(&txStore{state: working}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = working
	return nil
}

type state struct {
	registrations map[int64]*domain.Registration
	entries       map[int64]*domain.Entry
	awards        map[int64]*domain.Award
	logs          []*domain.LogEntry
	nextReg       int64
	nextEntry     int64
	nextAward     int64
	nextLog       int64
}

func newState() *state {
	return &state{
		registrations: map[int64]*domain.Registration{},
		entries:       map[int64]*domain.Entry{},
		awards:        map[int64]*domain.Award{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, reg := range s.registrations {
		c.registrations[id] = reg.Clone()
	}
	for id, entry := range s.entries {
		c.entries[id] = entry.Clone()
	}
	for id, award := range s.awards {
		c.awards[id] = award.Clone()
	}
	// log rows are never mutated, so the slice can share them
	c.logs = append([]*domain.LogEntry(nil), s.logs...)
	c.nextReg, c.nextEntry, c.nextAward, c.nextLog = s.nextReg, s.nextEntry, s.nextAward, s.nextLog
	return c
}

type txStore struct {
	state *state
}

// LockEvent is a no-op: the store mutex already serialises every transaction.
func (t *txStore) LockEvent(context.Context, int64) error {
	return nil
}

func (t *txStore) paid(entry *domain.Entry) bool {
	reg, ok := t.state.registrations[entry.RegistrationID]
	return ok && reg.IsPaid()
}

func (t *txStore) CountPaidPets(_ context.Context, eventID int64) (int, error) {
	pets := map[int64]struct{}{}
	for _, entry := range t.state.entries {
		if entry.EventID == eventID && t.paid(entry) {
			pets[entry.PetID] = struct{}{}
		}
	}
	return len(pets), nil
}

func (t *txStore) CountOwnerPaidPets(_ context.Context, ownerID, eventID int64) (int, error) {
	pets := map[int64]struct{}{}
	for _, entry := range t.state.entries {
		if entry.EventID != eventID || !t.paid(entry) {
			continue
		}
		if t.state.registrations[entry.RegistrationID].OwnerID == ownerID {
			pets[entry.PetID] = struct{}{}
		}
	}
	return len(pets), nil
}

func (t *txStore) FindPaidEntry(_ context.Context, petID, eventID int64) (*domain.Entry, error) {
	for _, entry := range t.sortedEntries() {
		if entry.PetID == petID && entry.EventID == eventID && t.paid(entry) {
			return entry.Clone(), nil
		}
	}
	return nil, nil
}

func (t *txStore) CreateRegistration(_ context.Context, reg *domain.Registration) error {
	if reg == nil {
		return errors.New("registration is nil")
	}
	t.state.nextReg++
	reg.ID = t.state.nextReg
	t.state.registrations[reg.ID] = reg.Clone()
	return nil
}

func (t *txStore) GetRegistration(_ context.Context, id int64, _ bool) (*domain.Registration, error) {
	reg, ok := t.state.registrations[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return reg.Clone(), nil
}

func (t *txStore) UpdateRegistration(_ context.Context, reg *domain.Registration) error {
	if _, ok := t.state.registrations[reg.ID]; !ok {
		return domain.ErrRegistrationNotFound
	}
	t.state.registrations[reg.ID] = reg.Clone()
	return nil
}

func (t *txStore) ListOwnerRegistrations(_ context.Context, ownerID int64) ([]domain.RegistrationSummary, error) {
	var summaries []domain.RegistrationSummary
	for _, reg := range t.state.registrations {
		if reg.OwnerID != ownerID {
			continue
		}
		summary := domain.RegistrationSummary{
			RegistrationID:   reg.ID,
			EventID:          reg.EventID,
			RegistrationDate: reg.RegistrationDate,
			TotalPaid:        reg.TotalPaid,
			Status:           reg.Status,
			CancelledOn:      reg.Clone().CancelledOn,
			PetIDs:           []int64{},
		}
		for _, entry := range t.sortedEntries() {
			if entry.RegistrationID == reg.ID {
				summary.PetIDs = append(summary.PetIDs, entry.PetID)
			}
		}
		sort.Slice(summary.PetIDs, func(i, j int) bool { return summary.PetIDs[i] < summary.PetIDs[j] })
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].RegistrationID > summaries[j].RegistrationID })
	return summaries, nil
}

func (t *txStore) CreateEntry(_ context.Context, entry *domain.Entry) error {
	if entry == nil {
		return errors.New("entry is nil")
	}
	for _, existing := range t.state.entries {
		if existing.PetID == entry.PetID && existing.EventID == entry.EventID {
			return domain.ErrAlreadyRegistered
		}
	}
	t.state.nextEntry++
	entry.ID = t.state.nextEntry
	t.state.entries[entry.ID] = entry.Clone()
	return nil
}

func (t *txStore) GetEntry(_ context.Context, id int64) (*domain.Entry, error) {
	entry, ok := t.state.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return entry.Clone(), nil
}

func (t *txStore) UpdateEntry(_ context.Context, entry *domain.Entry) error {
	if _, ok := t.state.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	t.state.entries[entry.ID] = entry.Clone()
	return nil
}

func (t *txStore) ListEntriesByRegistration(_ context.Context, registrationID int64) ([]*domain.Entry, error) {
	return t.filterEntries(func(e *domain.Entry) bool { return e.RegistrationID == registrationID }), nil
}

func (t *txStore) ListEventEntries(_ context.Context, eventID int64) ([]*domain.Entry, error) {
	return t.filterEntries(func(e *domain.Entry) bool { return e.EventID == eventID }), nil
}

func (t *txStore) DeleteEntries(_ context.Context, registrationID, eventID int64) (int, error) {
	removed := 0
	for id, entry := range t.state.entries {
		if entry.RegistrationID == registrationID && entry.EventID == eventID {
			delete(t.state.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (t *txStore) ListAwards(_ context.Context, eventID int64) ([]*domain.Award, error) {
	awards := make([]*domain.Award, 0)
	for _, award := range t.state.awards {
		if award.EventID == eventID {
			awards = append(awards, award.Clone())
		}
	}
	sort.Slice(awards, func(i, j int) bool { return awards[i].ID < awards[j].ID })
	return awards, nil
}

func (t *txStore) CreateAward(_ context.Context, award *domain.Award) error {
	if award == nil {
		return errors.New("award is nil")
	}
	t.state.nextAward++
	award.ID = t.state.nextAward
	t.state.awards[award.ID] = award.Clone()
	return nil
}

func (t *txStore) UpdateAward(_ context.Context, award *domain.Award) error {
	if _, ok := t.state.awards[award.ID]; !ok {
		return domain.ErrAwardNotFound
	}
	t.state.awards[award.ID] = award.Clone()
	return nil
}

func (t *txStore) AppendLog(_ context.Context, entry *domain.LogEntry) error {
	if entry == nil {
		return errors.New("log entry is nil")
	}
	t.state.nextLog++
	entry.ID = t.state.nextLog
	stored := *entry
	t.state.logs = append(t.state.logs, &stored)
	return nil
}

func (t *txStore) ListLogs(_ context.Context, filter domain.LogFilter) ([]*domain.LogEntry, error) {
	rows := make([]*domain.LogEntry, 0)
	for _, entry := range t.state.logs {
		if filter.Matches(entry) {
			c := *entry
			rows = append(rows, &c)
		}
	}
	return rows, nil
}

// Join returns ctx unchanged: the other in-memory repositories have no transaction to join,
// and a failing callback still discards this store's working copy.
func (t *txStore) Join(ctx context.Context) context.Context {
	return ctx
}

func (t *txStore) ReleasePet(_ context.Context, petID int64) ([]int64, error) {
	touched := map[int64]struct{}{}
	for id, entry := range t.state.entries {
		if entry.PetID == petID {
			touched[entry.EventID] = struct{}{}
			delete(t.state.entries, id)
		}
	}
	for _, award := range t.state.awards {
		if award.HeldBy(petID) {
			touched[award.EventID] = struct{}{}
			award.Clear()
		}
	}
	events := make([]int64, 0, len(touched))
	for id := range touched {
		events = append(events, id)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events, nil
}

func (t *txStore) sortedEntries() []*domain.Entry {
	return t.filterEntries(func(*domain.Entry) bool { return true })
}

func (t *txStore) filterEntries(keep func(*domain.Entry) bool) []*domain.Entry {
	entries := make([]*domain.Entry, 0)
	for _, entry := range t.state.entries {
		if keep(entry) {
			entries = append(entries, entry.Clone())
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
