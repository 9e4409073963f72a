package migrations

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Run applies the schema for every bounded context and seeds the size categories.
// Adapters map onto these tables but never migrate them.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&sizeCategoryRecord{},
		&breedRecord{},
		&ownerRecord{},
		&petRecord{},
		&petBreedRecord{},
		&eventRecord{},
		&registrationRecord{},
		&entryRecord{},
		&participationLogRecord{},
		&awardRecord{},
		&registrationIdempotencyRecord{},
	); err != nil {
		return err
	}
	return seedSizeCategories(db)
}

func seedSizeCategories(db *gorm.DB) error {
	rows := []sizeCategoryRecord{
		{ID: 1, Name: "Small"},
		{ID: 2, Name: "Medium"},
		{ID: 3, Name: "Large"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

type sizeCategoryRecord struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false;column:id"`
	Name string `gorm:"column:name;size:32;not null"`
}

func (sizeCategoryRecord) TableName() string { return "size_category" }

// Breed schema mirrors the catalog Postgres adapter.
type breedRecord struct {
	ID     int64  `gorm:"primaryKey;column:id"`
	Name   string `gorm:"column:name;size:128;not null;uniqueIndex"`
	SizeID int    `gorm:"column:size_id;not null"`
}

func (breedRecord) TableName() string { return "breeds" }

// Owner schema mirrors the owners Postgres adapter.
type ownerRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	FirstName     string    `gorm:"column:first_name;size:128;not null"`
	LastName      string    `gorm:"column:last_name;size:128;not null"`
	Email         string    `gorm:"column:email;size:255;index:idx_owners_email,unique,where:email <> ''"`
	ContactNumber string    `gorm:"column:contact_number;size:64"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (ownerRecord) TableName() string { return "owners" }

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	OwnerID   int64     `gorm:"column:owner_id;not null;index"`
	Name      string    `gorm:"column:name;size:128;not null"`
	SizeID    int       `gorm:"column:size_id;not null"`
	Age       int       `gorm:"column:age"`
	Sex       string    `gorm:"column:sex;size:1"`
	WeightKg  float64   `gorm:"column:weight_kg"`
	Muzzle    bool      `gorm:"column:muzzle"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

type petBreedRecord struct {
	PetID   int64 `gorm:"primaryKey;autoIncrement:false;column:pet_id"`
	BreedID int64 `gorm:"primaryKey;autoIncrement:false;column:breed_id"`
}

func (petBreedRecord) TableName() string { return "pet_breed_junction" }

// Event schema mirrors the catalog Postgres adapter.
type eventRecord struct {
	ID                   int64     `gorm:"primaryKey;column:id"`
	Name                 string    `gorm:"column:name;size:255;not null"`
	EventDate            time.Time `gorm:"column:event_date;type:date;not null;index"`
	EventTime            string    `gorm:"column:event_time;size:16"`
	Location             string    `gorm:"column:location;size:255"`
	EventType            string    `gorm:"column:event_type;size:64"`
	MaxParticipants      int       `gorm:"column:max_participants;not null"`
	RegistrationDeadline time.Time `gorm:"column:registration_deadline;type:date;not null"`
	IsOpen               bool      `gorm:"column:is_open;not null;default:true"`
	BaseFee              float64   `gorm:"column:base_fee;type:numeric(10,2);not null"`
	ExtraPetDiscount     float64   `gorm:"column:extra_pet_discount;type:numeric(10,2);not null;default:0"`
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

// Registration schema mirrors the participation Postgres store. Rows are never deleted.
type registrationRecord struct {
	ID               int64      `gorm:"primaryKey;column:id"`
	OwnerID          int64      `gorm:"column:owner_id;not null;index"`
	EventID          int64      `gorm:"column:event_id;not null;index"`
	RegistrationDate time.Time  `gorm:"column:registration_date;type:date;not null"`
	TotalAmountPaid  float64    `gorm:"column:total_amount_paid;type:numeric(10,2);not null"`
	PaidAt           time.Time  `gorm:"column:paid_at;not null"`
	Status           string     `gorm:"column:status;size:16;not null;index"`
	CancellationDate *time.Time `gorm:"column:cancellation_date;type:date"`
}

func (registrationRecord) TableName() string { return "event_registrations" }

// Entry schema enforces one entry per (pet, event); only Paid registrations own entries.
type entryRecord struct {
	ID               int64    `gorm:"primaryKey;column:id"`
	RegistrationID   int64    `gorm:"column:registration_id;not null;index"`
	PetID            int64    `gorm:"column:pet_id;not null;uniqueIndex:idx_entries_pet_event"`
	EventID          int64    `gorm:"column:event_id;not null;uniqueIndex:idx_entries_pet_event;index"`
	AttendanceStatus string   `gorm:"column:attendance_status;size:16;not null"`
	PetResult        *float64 `gorm:"column:pet_result"`
}

func (entryRecord) TableName() string { return "pet_event_entries" }

// Participation log schema. Append-only.
type participationLogRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	RegistrationID  int64     `gorm:"column:registration_id;not null;index"`
	ActionType      string    `gorm:"column:action_type;size:32;not null"`
	ActionAt        time.Time `gorm:"column:action_at;not null"`
	OriginalEventID int64     `gorm:"column:original_event_id;not null;index"`
	NewEventID      *int64    `gorm:"column:new_event_id"`
	Reason          string    `gorm:"column:reason"`
	RefundAmount    float64   `gorm:"column:refund_amount;type:numeric(10,2);not null;default:0"`
	TopUpAmount     float64   `gorm:"column:top_up_amount;type:numeric(10,2);not null;default:0"`
}

func (participationLogRecord) TableName() string { return "participation_log" }

type awardRecord struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	EventID     int64      `gorm:"column:event_id;not null;index"`
	PetID       *int64     `gorm:"column:pet_id;index"`
	IsSpecial   bool       `gorm:"column:is_special;not null"`
	AwardName   string     `gorm:"column:award_name;size:128;not null"`
	Description string     `gorm:"column:description"`
	AwardDate   *time.Time `gorm:"column:award_date;type:date"`
}

func (awardRecord) TableName() string { return "awards" }

type registrationIdempotencyRecord struct {
	Key            string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash    string    `gorm:"column:request_hash;size:128;not null"`
	RegistrationID int64     `gorm:"column:registration_id;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (registrationIdempotencyRecord) TableName() string { return "registration_idempotency_keys" }
