package domain

import "strings"

// Attendance is the per-entry check-in state.
type Attendance string

const (
	AttendanceRegistered Attendance = "Registered"
	AttendancePresent    Attendance = "Present"
	AttendanceNoShow     Attendance = "No Show"
)

// ParseAttendance accepts the display labels case-insensitively.
func ParseAttendance(value string) (Attendance, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "registered":
		return AttendanceRegistered, nil
	case "present":
		return AttendancePresent, nil
	case "no show", "no_show", "noshow":
		return AttendanceNoShow, nil
	default:
		return "", ErrInvalidAttendance
	}
}

// Entry is the participation record of one pet within a registration.
type Entry struct {
	ID             int64
	RegistrationID int64
	PetID          int64
	EventID        int64
	Attendance     Attendance
	Result         *float64
}

// NewEntry creates a fresh entry with no result.
func NewEntry(registrationID, petID, eventID int64) *Entry {
	return &Entry{
		RegistrationID: registrationID,
		PetID:          petID,
		EventID:        eventID,
		Attendance:     AttendanceRegistered,
	}
}

// Score stores the judged result.
func (e *Entry) Score(result float64) {
	e.Result = &result
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	if e.Result != nil {
		v := *e.Result
		c.Result = &v
	}
	return &c
}
