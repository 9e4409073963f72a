package domain

import "time"

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from start to end.
// It is negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours() / 24)
}
