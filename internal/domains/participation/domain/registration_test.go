package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistration_Lifecycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC)
	reg := NewRegistration(7, 1, now, 300.004, now)

	require.Equal(t, StatusPaid, reg.Status)
	require.Equal(t, 300.0, reg.TotalPaid)
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), reg.RegistrationDate)

	require.ErrorIs(t, reg.MoveTo(1, 400, now), ErrSameEventTransfer)
	require.NoError(t, reg.MoveTo(2, 400, now.Add(time.Hour)))
	require.Equal(t, int64(2), reg.EventID)
	require.Equal(t, 400.0, reg.TotalPaid)

	require.NoError(t, reg.Cancel(now))
	require.Equal(t, StatusCancelled, reg.Status)
	require.NotNil(t, reg.CancelledOn)
	require.ErrorIs(t, reg.Cancel(now), ErrRegistrationNotPaid)
	require.ErrorIs(t, reg.MoveTo(3, 100, now), ErrRegistrationNotPaid)
}

func TestParseAttendance(t *testing.T) {
	status, err := ParseAttendance("no show")
	require.NoError(t, err)
	require.Equal(t, AttendanceNoShow, status)

	status, err = ParseAttendance("Present")
	require.NoError(t, err)
	require.Equal(t, AttendancePresent, status)

	_, err = ParseAttendance("late")
	require.ErrorIs(t, err, ErrInvalidAttendance)
}

func TestCheckSeeds_RejectsMixedKinds(t *testing.T) {
	existing := []*Award{{ID: 1, Name: "Champion"}}

	require.NoError(t, CheckSeeds(existing, []AwardSeed{{Name: "Runner Up"}}))
	require.ErrorIs(t, CheckSeeds(existing, []AwardSeed{{Name: "Best Coat", Special: true}}), ErrMixedAwardKinds)
	require.ErrorIs(t, CheckSeeds(nil, []AwardSeed{{Name: "A"}, {Name: "B", Special: true}}), ErrMixedAwardKinds)
	require.ErrorIs(t, CheckSeeds(nil, []AwardSeed{{Name: " "}}), ErrEmptyAwardName)
}

func TestLogFilter_MatchesBothTransferEnds(t *testing.T) {
	target := int64(5)
	entry := &LogEntry{RegistrationID: 2, OriginalEventID: 4, NewEventID: &target}

	require.True(t, LogFilter{}.Matches(entry))
	require.True(t, LogFilter{EventID: 4}.Matches(entry))
	require.True(t, LogFilter{EventID: 5}.Matches(entry))
	require.False(t, LogFilter{EventID: 6}.Matches(entry))
	require.False(t, LogFilter{RegistrationID: 3}.Matches(entry))
}
