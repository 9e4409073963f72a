package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
	platformpostgres "github.com/Apurer/petshow-api/internal/platform/postgres"
)

var _ ports.Store = (*Store)(nil)

// Store maps participation state onto the registration tables. It is bound to one transaction.
type Store struct {
	db *gorm.DB
}

const countPaidPets = `
SELECT COUNT(DISTINCT e.pet_id)
FROM pet_event_entries e
JOIN event_registrations r ON r.id = e.registration_id
WHERE e.event_id = ? AND r.status = ?`

const selectOwnerRegistrations = `
SELECT r.id, r.event_id, r.registration_date, r.total_amount_paid, r.status, r.cancellation_date,
       COALESCE(array_agg(e.pet_id ORDER BY e.pet_id) FILTER (WHERE e.pet_id IS NOT NULL), '{}') AS pet_ids
FROM event_registrations r
LEFT JOIN pet_event_entries e ON e.registration_id = r.id
WHERE r.owner_id = ?
GROUP BY r.id
ORDER BY r.id DESC`

type summaryRow struct {
	ID               int64         `gorm:"column:id"`
	EventID          int64         `gorm:"column:event_id"`
	RegistrationDate time.Time     `gorm:"column:registration_date"`
	TotalAmountPaid  float64       `gorm:"column:total_amount_paid"`
	Status           string        `gorm:"column:status"`
	CancellationDate *time.Time    `gorm:"column:cancellation_date"`
	PetIDs           pq.Int64Array `gorm:"column:pet_ids"`
}

// LockEvent takes a row lock on the event until the transaction ends.
func (s *Store) LockEvent(ctx context.Context, eventID int64) error {
	var locked struct{ ID int64 }
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Table("events").
		Select("id").
		Where("id = ?", eventID).
		Take(&locked).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %d", domain.ErrEventNotFound, eventID)
	}
	return err
}

func (s *Store) CountPaidPets(ctx context.Context, eventID int64) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Raw(countPaidPets, eventID, string(domain.StatusPaid)).Scan(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Store) CountOwnerPaidPets(ctx context.Context, ownerID, eventID int64) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Raw(countPaidPets+" AND r.owner_id = ?", eventID, string(domain.StatusPaid), ownerID).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Store) FindPaidEntry(ctx context.Context, petID, eventID int64) (*domain.Entry, error) {
	var records []entryRecord
	err := s.db.WithContext(ctx).
		Table("pet_event_entries AS e").
		Select("e.*").
		Joins("JOIN event_registrations r ON r.id = e.registration_id").
		Where("e.pet_id = ? AND e.event_id = ? AND r.status = ?", petID, eventID, string(domain.StatusPaid)).
		Order("e.id").
		Limit(1).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0].toDomain(), nil
}

func (s *Store) CreateRegistration(ctx context.Context, reg *domain.Registration) error {
	record := toRegistrationRecord(reg)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}
	reg.ID = record.ID
	return nil
}

func (s *Store) GetRegistration(ctx context.Context, id int64, forUpdate bool) (*domain.Registration, error) {
	query := s.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record registrationRecord
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (s *Store) UpdateRegistration(ctx context.Context, reg *domain.Registration) error {
	record := toRegistrationRecord(reg)
	res := s.db.WithContext(ctx).Model(&registrationRecord{}).Where("id = ?", reg.ID).Updates(map[string]any{
		"event_id":          record.EventID,
		"total_amount_paid": record.TotalAmountPaid,
		"paid_at":           record.PaidAt,
		"status":            record.Status,
		"cancellation_date": record.CancellationDate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (s *Store) ListOwnerRegistrations(ctx context.Context, ownerID int64) ([]domain.RegistrationSummary, error) {
	var rows []summaryRow
	if err := s.db.WithContext(ctx).Raw(selectOwnerRegistrations, ownerID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	summaries := make([]domain.RegistrationSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.RegistrationSummary{
			RegistrationID:   row.ID,
			EventID:          row.EventID,
			RegistrationDate: row.RegistrationDate.UTC(),
			TotalPaid:        domain.RoundCents(row.TotalAmountPaid),
			Status:           domain.RegistrationStatus(row.Status),
			PetIDs:           []int64(row.PetIDs),
		}
		if row.CancellationDate != nil {
			day := row.CancellationDate.UTC()
			summary.CancelledOn = &day
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *Store) CreateEntry(ctx context.Context, entry *domain.Entry) error {
	record := toEntryRecord(entry)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	entry.ID = record.ID
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	var record entryRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (s *Store) UpdateEntry(ctx context.Context, entry *domain.Entry) error {
	res := s.db.WithContext(ctx).Model(&entryRecord{}).Where("id = ?", entry.ID).Updates(map[string]any{
		"attendance_status": string(entry.Attendance),
		"pet_result":        entry.Result,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (s *Store) ListEntriesByRegistration(ctx context.Context, registrationID int64) ([]*domain.Entry, error) {
	return s.listEntries(ctx, "registration_id = ?", registrationID)
}

func (s *Store) ListEventEntries(ctx context.Context, eventID int64) ([]*domain.Entry, error) {
	return s.listEntries(ctx, "event_id = ?", eventID)
}

func (s *Store) listEntries(ctx context.Context, where string, arg int64) ([]*domain.Entry, error) {
	var records []entryRecord
	if err := s.db.WithContext(ctx).Where(where, arg).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	entries := make([]*domain.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, record.toDomain())
	}
	return entries, nil
}

func (s *Store) DeleteEntries(ctx context.Context, registrationID, eventID int64) (int, error) {
	res := s.db.WithContext(ctx).
		Where("registration_id = ? AND event_id = ?", registrationID, eventID).
		Delete(&entryRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (s *Store) ListAwards(ctx context.Context, eventID int64) ([]*domain.Award, error) {
	var records []awardRecord
	if err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	awards := make([]*domain.Award, 0, len(records))
	for _, record := range records {
		awards = append(awards, record.toDomain())
	}
	return awards, nil
}

func (s *Store) CreateAward(ctx context.Context, award *domain.Award) error {
	record := toAwardRecord(award)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}
	award.ID = record.ID
	return nil
}

func (s *Store) UpdateAward(ctx context.Context, award *domain.Award) error {
	res := s.db.WithContext(ctx).Model(&awardRecord{}).Where("id = ?", award.ID).Updates(map[string]any{
		"pet_id":      award.PetID,
		"description": award.Description,
		"award_date":  award.Date,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAwardNotFound
	}
	return nil
}

func (s *Store) AppendLog(ctx context.Context, entry *domain.LogEntry) error {
	record := toLogRecord(entry)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}
	entry.ID = record.ID
	return nil
}

func (s *Store) ListLogs(ctx context.Context, filter domain.LogFilter) ([]*domain.LogEntry, error) {
	query := s.db.WithContext(ctx).Model(&logRecord{})
	if filter.RegistrationID > 0 {
		query = query.Where("registration_id = ?", filter.RegistrationID)
	}
	if filter.EventID > 0 {
		query = query.Where("original_event_id = ? OR new_event_id = ?", filter.EventID, filter.EventID)
	}
	var records []logRecord
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	rows := make([]*domain.LogEntry, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.toDomain())
	}
	return rows, nil
}

// Join hands the open transaction to repositories that resolve their handle with platformpostgres.Conn.
func (s *Store) Join(ctx context.Context) context.Context {
	return platformpostgres.WithTx(ctx, s.db)
}

func (s *Store) ReleasePet(ctx context.Context, petID int64) ([]int64, error) {
	db := s.db.WithContext(ctx)
	var entryEvents, awardEvents []int64
	if err := db.Model(&entryRecord{}).Where("pet_id = ?", petID).Distinct().Pluck("event_id", &entryEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&awardRecord{}).Where("pet_id = ?", petID).Distinct().Pluck("event_id", &awardEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Where("pet_id = ?", petID).Delete(&entryRecord{}).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&awardRecord{}).Where("pet_id = ?", petID).Update("pet_id", nil).Error; err != nil {
		return nil, err
	}
	return mergeIDs(entryEvents, awardEvents), nil
}

func mergeIDs(a, b []int64) []int64 {
	seen := map[int64]struct{}{}
	merged := make([]int64, 0, len(a)+len(b))
	for _, id := range append(append([]int64{}, a...), b...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	slices.Sort(merged)
	return merged
}
