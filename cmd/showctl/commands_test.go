package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	participationdomain "github.com/Apurer/petshow-api/internal/domains/participation/domain"
	participationports "github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

type stubService struct {
	participationports.Service
	filter participationdomain.LogFilter
	rows   []*participationdomain.LogEntry
}

func (s *stubService) ListLog(_ context.Context, filter participationdomain.LogFilter) ([]*participationdomain.LogEntry, error) {
	s.filter = filter
	return s.rows, nil
}

func (s *stubService) EventStanding(_ context.Context, eventID int64) (*participationdomain.Standing, error) {
	standing := participationdomain.NewStanding(eventID, 3, 4)
	return &standing, nil
}

func testEnv(out *bytes.Buffer, service participationports.Service) env {
	return env{
		out:     out,
		timeout: time.Second,
		migrate: func(context.Context) error { return nil },
		connect: func(context.Context) (participationports.Service, func(), error) {
			return service, func() {}, nil
		},
	}
}

func TestLogCommand_PassesFiltersAndPrintsJSON(t *testing.T) {
	target := int64(9)
	service := &stubService{rows: []*participationdomain.LogEntry{{
		ID:              1,
		RegistrationID:  42,
		Action:          participationdomain.ActionTransferred,
		At:              time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		OriginalEventID: 7,
		NewEventID:      &target,
		TopUp:           50,
	}}}
	var out bytes.Buffer
	root := newRootCmd(testEnv(&out, service))
	root.SetArgs([]string{"log", "--registration", "42", "-e", "7"})

	require.NoError(t, root.Execute())
	assert.Equal(t, participationdomain.LogFilter{RegistrationID: 42, EventID: 7}, service.filter)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Transferred", rows[0]["action"])
	assert.EqualValues(t, 9, rows[0]["newEventId"])
}

func TestStandingCommand_RequiresEvent(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(testEnv(&out, &stubService{}))
	root.SetArgs([]string{"standing"})
	assert.ErrorContains(t, root.Execute(), "--event")

	root = newRootCmd(testEnv(&out, &stubService{}))
	root.SetArgs([]string{"standing", "--event", "5"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"availableSpots": 1`)
}

func TestMigrateCommand_WrapsFailure(t *testing.T) {
	var out bytes.Buffer
	e := testEnv(&out, &stubService{})
	e.migrate = func(context.Context) error { return errors.New("no route to host") }
	root := newRootCmd(e)
	root.SetArgs([]string{"migrate"})
	assert.ErrorContains(t, root.Execute(), "migrate: no route to host")
}
