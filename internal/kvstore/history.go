// ABOUTME: Finished-session queries for Badger KV storage.
// ABOUTME: Implements the history reader by scanning and filtering decoded records.
package kvstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/lift/internal/models"
)

// RecentFinishedSessionsForExercise returns the most recent finished sessions
// that include the template, each with that template's completed sets.
func (s *Store) RecentFinishedSessionsForExercise(ctx context.Context, templateID string, limit int) ([]models.SessionHistory, error) {
	var history []models.SessionHistory
	err := s.view(ctx, func(txn *badger.Txn) error {
		exercises, err := listDecoded[models.WorkoutExercise](txn, ExercisePrefix, s.log)
		if err != nil {
			return err
		}
		exerciseIDs := make(map[string]bool)
		sessionIDs := make(map[string]bool)
		for _, e := range exercises {
			if e.ExerciseTemplateID == templateID {
				exerciseIDs[e.ID] = true
				sessionIDs[e.SessionID] = true
			}
		}

		sessions, err := s.finishedSessions(txn, func(ws *models.WorkoutSession) bool {
			return sessionIDs[ws.ID]
		}, limit)
		if err != nil {
			return err
		}

		sets, err := s.setsOf(txn, exerciseIDs)
		if err != nil {
			return err
		}
		exerciseSession := make(map[string]string, len(exercises))
		for _, e := range exercises {
			exerciseSession[e.ID] = e.SessionID
		}
		completed := make(map[string][]models.WorkoutSet)
		for _, set := range sets {
			if set.IsCompleted {
				sid := exerciseSession[set.ExerciseID]
				completed[sid] = append(completed[sid], *set)
			}
		}

		for _, ws := range sessions {
			history = append(history, models.SessionHistory{
				SessionID: ws.ID,
				Date:      ws.StartedAt,
				Name:      ws.Name,
				Sets:      completed[ws.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recent sessions for %s: %w", templateID, err)
	}
	return history, nil
}

// ListFinishedSessions retrieves finished sessions, most recent first.
func (s *Store) ListFinishedSessions(ctx context.Context, limit int) ([]*models.WorkoutSession, error) {
	var sessions []*models.WorkoutSession
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		sessions, err = s.finishedSessions(txn, nil, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list finished sessions: %w", err)
	}
	return sessions, nil
}

// finishedSessions returns finished sessions accepted by keep, most recent
// first, truncated to limit when it is positive.
func (s *Store) finishedSessions(txn *badger.Txn, keep func(*models.WorkoutSession) bool, limit int) ([]*models.WorkoutSession, error) {
	all, err := listDecoded[models.WorkoutSession](txn, SessionPrefix, s.log)
	if err != nil {
		return nil, err
	}

	var out []*models.WorkoutSession
	for _, ws := range all {
		if !ws.IsFinished() {
			continue
		}
		if keep != nil && !keep(ws) {
			continue
		}
		out = append(out, ws)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
