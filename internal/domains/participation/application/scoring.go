package application

import (
	"context"
	"math"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// SetAttendance records an entry's check-in state. It writes no log row.
func (s *Service) SetAttendance(ctx context.Context, input types.AttendanceInput) (*domain.Entry, error) {
	switch {
	case input.EntryID <= 0:
		return nil, invalid("entry id must be greater than zero")
	case input.EventID <= 0:
		return nil, invalid("event id must be greater than zero")
	}
	status, err := domain.ParseAttendance(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	var entry *domain.Entry
	err = s.tx.RunInTx(ctx, func(store ports.Store) error {
		var err error
		entry, err = store.GetEntry(ctx, input.EntryID)
		if err != nil {
			return err
		}
		if entry.EventID != input.EventID {
			return domain.ErrEntryNotFound
		}
		entry.Attendance = status
		return store.UpdateEntry(ctx, entry)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return entry, nil
}

// RecordScore stores a result on an entry of a placement event, re-ranks the event and
// rebinds its 1st and 2nd place awards. Repeating a call leaves the bindings unchanged.
func (s *Service) RecordScore(ctx context.Context, input types.RecordScoreInput) (*types.ScoreResult, error) {
	switch {
	case input.EntryID <= 0:
		return nil, invalid("entry id must be greater than zero")
	case input.EventID <= 0:
		return nil, invalid("event id must be greater than zero")
	case math.IsNaN(input.Score) || math.IsInf(input.Score, 0):
		return nil, invalid("score must be a finite number")
	}
	var result *types.ScoreResult
	err := s.tx.RunInTx(ctx, func(store ports.Store) error {
		entry, err := store.GetEntry(ctx, input.EntryID)
		if err != nil {
			return err
		}
		if entry.EventID != input.EventID {
			return domain.ErrEntryNotFound
		}
		awards, err := store.ListAwards(ctx, input.EventID)
		if err != nil {
			return err
		}
		if domain.StyleOf(awards) != domain.AwardStylePlacement {
			return domain.ErrNotPlacementEvent
		}
		entry.Score(input.Score)
		if err := store.UpdateEntry(ctx, entry); err != nil {
			return err
		}
		ranking, board, err := rebuildPlacements(ctx, store, input.EventID)
		if err != nil {
			return err
		}
		result = &types.ScoreResult{Entry: entry, Ranking: ranking, Awards: board}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}
