package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/catalog/ports"
	platformpostgres "github.com/Apurer/petshow-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists events and breeds in PostgreSQL using GORM.
// The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type eventRecord struct {
	ID                   int64     `gorm:"primaryKey;column:id"`
	Name                 string    `gorm:"column:name"`
	EventDate            time.Time `gorm:"column:event_date;type:date"`
	EventTime            string    `gorm:"column:event_time"`
	Location             string    `gorm:"column:location"`
	EventType            string    `gorm:"column:event_type"`
	MaxParticipants      int       `gorm:"column:max_participants"`
	RegistrationDeadline time.Time `gorm:"column:registration_deadline;type:date"`
	IsOpen               bool      `gorm:"column:is_open"`
	BaseFee              float64   `gorm:"column:base_fee;type:numeric(10,2)"`
	ExtraPetDiscount     float64   `gorm:"column:extra_pet_discount;type:numeric(10,2)"`
	MinWeightKg          *float64  `gorm:"column:min_weight_kg"`
	MaxWeightKg          *float64  `gorm:"column:max_weight_kg"`
	MinSizeID            *int      `gorm:"column:min_size_id"`
	MaxSizeID            *int      `gorm:"column:max_size_id"`
	DistanceKm           *float64  `gorm:"column:distance_km"`
	TimeLimitMinutes     *int      `gorm:"column:time_limit_minutes"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (eventRecord) TableName() string { return "events" }

type breedRecord struct {
	ID     int64  `gorm:"primaryKey;column:id"`
	Name   string `gorm:"column:name"`
	SizeID int    `gorm:"column:size_id"`
}

func (breedRecord) TableName() string { return "breeds" }

// SaveEvent inserts a new event or replaces an existing one.
func (r *Repository) SaveEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.New("event is nil")
	}
	record := toEventRecord(event)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
		return r.GetEvent(ctx, record.ID)
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":                  record.Name,
				"event_date":            record.EventDate,
				"event_time":            record.EventTime,
				"location":              record.Location,
				"event_type":            record.EventType,
				"max_participants":      record.MaxParticipants,
				"registration_deadline": record.RegistrationDeadline,
				"is_open":               record.IsOpen,
				"base_fee":              record.BaseFee,
				"extra_pet_discount":    record.ExtraPetDiscount,
				"min_weight_kg":         record.MinWeightKg,
				"max_weight_kg":         record.MaxWeightKg,
				"min_size_id":           record.MinSizeID,
				"max_size_id":           record.MaxSizeID,
				"distance_km":           record.DistanceKm,
				"time_limit_minutes":    record.TimeLimitMinutes,
				"updated_at":            gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetEvent(ctx, record.ID)
}

// GetEvent fetches an event by identifier.
func (r *Repository) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record eventRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrEventNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListEvents returns events ordered by date, optionally only those accepting registrations.
func (r *Repository) ListEvents(ctx context.Context, openOnly bool) ([]*domain.Event, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("event_date ASC").Order("id ASC")
	if openOnly {
		query = query.Where("is_open = ?", true)
	}
	var records []eventRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(records))
	for i := range records {
		events = append(events, records[i].toDomain())
	}
	return events, nil
}

// SaveBreed inserts or renames a breed.
func (r *Repository) SaveBreed(ctx context.Context, breed *domain.Breed) (*domain.Breed, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if breed == nil {
		return nil, errors.New("breed is nil")
	}
	record := breedRecord{ID: breed.ID, Name: breed.Name, SizeID: int(breed.Size)}
	tx := r.db.WithContext(ctx)
	var err error
	if record.ID == 0 {
		err = tx.Create(&record).Error
	} else {
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "size_id"}),
		}).Create(&record).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	return &domain.Breed{ID: record.ID, Name: record.Name, Size: domain.SizeCategory(record.SizeID)}, nil
}

// ListBreeds returns breeds ordered by name.
func (r *Repository) ListBreeds(ctx context.Context) ([]*domain.Breed, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []breedRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	breeds := make([]*domain.Breed, 0, len(records))
	for _, rec := range records {
		breeds = append(breeds, &domain.Breed{ID: rec.ID, Name: rec.Name, Size: domain.SizeCategory(rec.SizeID)})
	}
	return breeds, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toEventRecord(event *domain.Event) eventRecord {
	return eventRecord{
		ID:                   event.ID,
		Name:                 event.Name,
		EventDate:            domain.DateOf(event.Date),
		EventTime:            event.Time,
		Location:             event.Location,
		EventType:            event.Type,
		MaxParticipants:      event.MaxParticipants,
		RegistrationDeadline: domain.DateOf(event.RegistrationDeadline),
		IsOpen:               event.Open,
		BaseFee:              event.BaseFee,
		ExtraPetDiscount:     event.ExtraPetDiscount,
		MinWeightKg:          event.MinWeightKg,
		MaxWeightKg:          event.MaxWeightKg,
		MinSizeID:            sizeToColumn(event.MinSize),
		MaxSizeID:            sizeToColumn(event.MaxSize),
		DistanceKm:           event.DistanceKm,
		TimeLimitMinutes:     event.TimeLimitMinutes,
	}
}

func (r eventRecord) toDomain() *domain.Event {
	return &domain.Event{
		ID:                   r.ID,
		Name:                 r.Name,
		Date:                 domain.DateOf(r.EventDate),
		Time:                 r.EventTime,
		Location:             r.Location,
		Type:                 r.EventType,
		MaxParticipants:      r.MaxParticipants,
		RegistrationDeadline: domain.DateOf(r.RegistrationDeadline),
		Open:                 r.IsOpen,
		BaseFee:              r.BaseFee,
		ExtraPetDiscount:     r.ExtraPetDiscount,
		MinWeightKg:          r.MinWeightKg,
		MaxWeightKg:          r.MaxWeightKg,
		MinSize:              sizeFromColumn(r.MinSizeID),
		MaxSize:              sizeFromColumn(r.MaxSizeID),
		DistanceKm:           r.DistanceKm,
		TimeLimitMinutes:     r.TimeLimitMinutes,
	}
}

func sizeToColumn(size *domain.SizeCategory) *int {
	if size == nil {
		return nil
	}
	v := int(*size)
	return &v
}

func sizeFromColumn(v *int) *domain.SizeCategory {
	if v == nil {
		return nil
	}
	size := domain.SizeCategory(*v)
	return &size
}
