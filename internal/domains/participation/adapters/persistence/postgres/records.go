package postgres

import (
	"time"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

type registrationRecord struct {
	ID               int64      `gorm:"primaryKey;column:id"`
	OwnerID          int64      `gorm:"column:owner_id"`
	EventID          int64      `gorm:"column:event_id"`
	RegistrationDate time.Time  `gorm:"column:registration_date"`
	TotalAmountPaid  float64    `gorm:"column:total_amount_paid"`
	PaidAt           time.Time  `gorm:"column:paid_at"`
	Status           string     `gorm:"column:status"`
	CancellationDate *time.Time `gorm:"column:cancellation_date"`
}

func (registrationRecord) TableName() string { return "event_registrations" }

type entryRecord struct {
	ID               int64    `gorm:"primaryKey;column:id"`
	RegistrationID   int64    `gorm:"column:registration_id"`
	PetID            int64    `gorm:"column:pet_id"`
	EventID          int64    `gorm:"column:event_id"`
	AttendanceStatus string   `gorm:"column:attendance_status"`
	PetResult        *float64 `gorm:"column:pet_result"`
}

func (entryRecord) TableName() string { return "pet_event_entries" }

type logRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	RegistrationID  int64     `gorm:"column:registration_id"`
	ActionType      string    `gorm:"column:action_type"`
	ActionAt        time.Time `gorm:"column:action_at"`
	OriginalEventID int64     `gorm:"column:original_event_id"`
	NewEventID      *int64    `gorm:"column:new_event_id"`
	Reason          string    `gorm:"column:reason"`
	RefundAmount    float64   `gorm:"column:refund_amount"`
	TopUpAmount     float64   `gorm:"column:top_up_amount"`
}

func (logRecord) TableName() string { return "participation_log" }

type awardRecord struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	EventID     int64      `gorm:"column:event_id"`
	PetID       *int64     `gorm:"column:pet_id"`
	IsSpecial   bool       `gorm:"column:is_special"`
	AwardName   string     `gorm:"column:award_name"`
	Description string     `gorm:"column:description"`
	AwardDate   *time.Time `gorm:"column:award_date"`
}

func (awardRecord) TableName() string { return "awards" }

func toRegistrationRecord(reg *domain.Registration) registrationRecord {
	return registrationRecord{
		ID:               reg.ID,
		OwnerID:          reg.OwnerID,
		EventID:          reg.EventID,
		RegistrationDate: reg.RegistrationDate,
		TotalAmountPaid:  reg.TotalPaid,
		PaidAt:           reg.PaidAt.UTC(),
		Status:           string(reg.Status),
		CancellationDate: reg.CancelledOn,
	}
}

func (r registrationRecord) toDomain() *domain.Registration {
	reg := &domain.Registration{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		EventID:          r.EventID,
		RegistrationDate: r.RegistrationDate.UTC(),
		TotalPaid:        domain.RoundCents(r.TotalAmountPaid),
		PaidAt:           r.PaidAt.UTC(),
		Status:           domain.RegistrationStatus(r.Status),
	}
	if r.CancellationDate != nil {
		day := r.CancellationDate.UTC()
		reg.CancelledOn = &day
	}
	return reg
}

func toEntryRecord(entry *domain.Entry) entryRecord {
	return entryRecord{
		ID:               entry.ID,
		RegistrationID:   entry.RegistrationID,
		PetID:            entry.PetID,
		EventID:          entry.EventID,
		AttendanceStatus: string(entry.Attendance),
		PetResult:        entry.Result,
	}
}

func (r entryRecord) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:             r.ID,
		RegistrationID: r.RegistrationID,
		PetID:          r.PetID,
		EventID:        r.EventID,
		Attendance:     domain.Attendance(r.AttendanceStatus),
		Result:         r.PetResult,
	}
}

func toLogRecord(entry *domain.LogEntry) logRecord {
	return logRecord{
		RegistrationID:  entry.RegistrationID,
		ActionType:      string(entry.Action),
		ActionAt:        entry.At.UTC(),
		OriginalEventID: entry.OriginalEventID,
		NewEventID:      entry.NewEventID,
		Reason:          entry.Reason,
		RefundAmount:    entry.Refund,
		TopUpAmount:     entry.TopUp,
	}
}

func (r logRecord) toDomain() *domain.LogEntry {
	return &domain.LogEntry{
		ID:              r.ID,
		RegistrationID:  r.RegistrationID,
		Action:          domain.Action(r.ActionType),
		At:              r.ActionAt.UTC(),
		OriginalEventID: r.OriginalEventID,
		NewEventID:      r.NewEventID,
		Reason:          r.Reason,
		Refund:          domain.RoundCents(r.RefundAmount),
		TopUp:           domain.RoundCents(r.TopUpAmount),
	}
}

func toAwardRecord(award *domain.Award) awardRecord {
	return awardRecord{
		ID:          award.ID,
		EventID:     award.EventID,
		PetID:       award.PetID,
		IsSpecial:   award.Special,
		AwardName:   award.Name,
		Description: award.Description,
		AwardDate:   award.Date,
	}
}

func (r awardRecord) toDomain() *domain.Award {
	award := &domain.Award{
		ID:          r.ID,
		EventID:     r.EventID,
		PetID:       r.PetID,
		Special:     r.IsSpecial,
		Name:        r.AwardName,
		Description: r.Description,
	}
	if r.AwardDate != nil {
		day := r.AwardDate.UTC()
		award.Date = &day
	}
	return award
}
