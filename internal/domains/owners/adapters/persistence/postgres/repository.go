package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/petshow-api/internal/domains/owners/domain"
	"github.com/Apurer/petshow-api/internal/domains/owners/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists owners in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type ownerRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	FirstName     string    `gorm:"column:first_name"`
	LastName      string    `gorm:"column:last_name"`
	Email         string    `gorm:"column:email"`
	ContactNumber string    `gorm:"column:contact_number"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (ownerRecord) TableName() string { return "owners" }

// Save inserts a new owner or updates the profile of an existing one.
func (r *Repository) Save(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errors.New("owner is nil")
	}
	record := toRecord(owner)
	query := r.db.WithContext(ctx)
	if record.ID != 0 {
		query = query.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "email", "contact_number", "updated_at"}),
		})
	}
	if err := query.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an owner by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Owner, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ownerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all owners ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Owner, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ownerRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	owners := make([]*domain.Owner, 0, len(records))
	for i := range records {
		owners = append(owners, records[i].toDomain())
	}
	return owners, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres owner repository not configured")
	}
	return nil
}

func toRecord(owner *domain.Owner) ownerRecord {
	return ownerRecord{
		ID:            owner.ID,
		FirstName:     owner.FirstName,
		LastName:      owner.LastName,
		Email:         owner.Email,
		ContactNumber: owner.ContactNumber,
	}
}

func (r ownerRecord) toDomain() *domain.Owner {
	return &domain.Owner{
		ID:            r.ID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		ContactNumber: r.ContactNumber,
	}
}
