package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
	"github.com/Apurer/petshow-api/internal/domains/pets/ports"
	platformpostgres "github.com/Apurer/petshow-api/internal/platform/postgres"
	"github.com/Apurer/petshow-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets and their breed links in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	OwnerID   int64     `gorm:"column:owner_id"`
	Name      string    `gorm:"column:name"`
	SizeID    int       `gorm:"column:size_id"`
	Age       int       `gorm:"column:age"`
	Sex       string    `gorm:"column:sex"`
	WeightKg  float64   `gorm:"column:weight_kg"`
	Muzzle    bool      `gorm:"column:muzzle"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

type breedLinkRecord struct {
	PetID   int64 `gorm:"primaryKey;column:pet_id"`
	BreedID int64 `gorm:"primaryKey;column:breed_id"`
}

func (breedLinkRecord) TableName() string { return "pet_breed_junction" }

// petRow is the read shape: the pet columns plus its aggregated breed ids.
type petRow struct {
	petRecord
	BreedIDs pq.Int64Array `gorm:"column:breed_ids"`
}

const selectPets = `
SELECT p.id, p.owner_id, p.name, p.size_id, p.age, p.sex, p.weight_kg, p.muzzle, p.notes, p.created_at, p.updated_at,
       COALESCE(array_agg(j.breed_id ORDER BY j.breed_id) FILTER (WHERE j.breed_id IS NOT NULL), '{}') AS breed_ids
FROM pets p
LEFT JOIN pet_breed_junction j ON j.pet_id = p.id`

// Save inserts or updates a pet and replaces its breed links in one transaction.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := toRecord(pet)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if record.ID != 0 {
			query = query.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"owner_id":   record.OwnerID,
					"name":       record.Name,
					"size_id":    record.SizeID,
					"age":        record.Age,
					"sex":        record.Sex,
					"weight_kg":  record.WeightKg,
					"muzzle":     record.Muzzle,
					"notes":      record.Notes,
					"updated_at": gorm.Expr("NOW()"),
				}),
			})
		}
		if err := query.Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("pet_id = ?", record.ID).Delete(&breedLinkRecord{}).Error; err != nil {
			return err
		}
		if len(pet.BreedIDs) == 0 {
			return nil
		}
		links := make([]breedLinkRecord, 0, len(pet.BreedIDs))
		for _, breedID := range pet.BreedIDs {
			links = append(links, breedLinkRecord{PetID: record.ID, BreedID: breedID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []petRow
	if err := r.db.WithContext(ctx).Raw(selectPets+` WHERE p.id = ? GROUP BY p.id`, id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	return rows[0].toProjection(), nil
}

// Delete removes a pet by identifier together with its breed links.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return platformpostgres.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pet_id = ?", id).Delete(&breedLinkRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&petRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

// ListByOwner returns the owner's pets ordered by id.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []petRow
	if err := r.db.WithContext(ctx).
		Raw(selectPets+` WHERE p.owner_id = ? GROUP BY p.id ORDER BY p.id`, ownerID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Pet], 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toProjection())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}

func toRecord(p *domain.Pet) petRecord {
	return petRecord{
		ID:       p.ID,
		OwnerID:  p.OwnerID,
		Name:     p.Name,
		SizeID:   int(p.Size),
		Age:      p.Age,
		Sex:      string(p.Sex),
		WeightKg: p.WeightKg,
		Muzzle:   p.Muzzle,
		Notes:    p.Notes,
	}
}

func (r *petRow) toProjection() *projection.Projection[*domain.Pet] {
	pet := &domain.Pet{
		ID:       r.ID,
		OwnerID:  r.OwnerID,
		Name:     r.Name,
		Size:     catalogdomain.SizeCategory(r.SizeID),
		Age:      r.Age,
		Sex:      domain.Sex(r.Sex),
		WeightKg: r.WeightKg,
		Muzzle:   r.Muzzle,
		Notes:    r.Notes,
	}
	if len(r.BreedIDs) > 0 {
		pet.BreedIDs = append([]int64{}, r.BreedIDs...)
	}
	return projection.Of(pet, r.CreatedAt, r.UpdatedAt)
}
