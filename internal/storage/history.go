// ABOUTME: Finished-session queries for SQLite storage.
// ABOUTME: Implements the HistoryReader port used by the progression analyzer and history views.
package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/lift/internal/models"
)

// RecentFinishedSessionsForExercise returns the most recent finished sessions
// that include the template, each with that template's completed sets.
func (d *DB) RecentFinishedSessionsForExercise(ctx context.Context, templateID string, limit int) ([]models.SessionHistory, error) {
	query := `
		SELECT ` + prefixColumns("s", sessionColumns) + `
		FROM workout_sessions s
		WHERE s.finished_at IS NOT NULL
		  AND EXISTS (
			SELECT 1 FROM workout_exercises we
			WHERE we.session_id = s.id AND we.exercise_template_id = ?
		  )
		ORDER BY s.started_at DESC`
	args := []any{templateID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	sessions, err := d.querySessions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent sessions for %s: %w", templateID, err)
	}

	history := make([]models.SessionHistory, 0, len(sessions))
	for _, s := range sessions {
		sets, err := d.querySets(ctx, `
			SELECT `+prefixColumns("ws", setColumns)+`
			FROM workout_sets ws
			JOIN workout_exercises we ON we.id = ws.exercise_id
			WHERE we.session_id = ? AND we.exercise_template_id = ? AND ws.is_completed = 1
			ORDER BY we.order_index ASC, ws.set_number ASC`, s.ID, templateID)
		if err != nil {
			return nil, fmt.Errorf("sets for session %s: %w", s.ID, err)
		}
		history = append(history, models.SessionHistory{
			SessionID: s.ID,
			Date:      s.StartedAt,
			Name:      s.Name,
			Sets:      sets,
		})
	}
	return history, nil
}

// ListFinishedSessions retrieves finished sessions, most recent first.
func (d *DB) ListFinishedSessions(ctx context.Context, limit int) ([]*models.WorkoutSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM workout_sessions
		WHERE finished_at IS NOT NULL
		ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	sessions, err := d.querySessions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list finished sessions: %w", err)
	}
	return sessions, nil
}

func (d *DB) querySessions(ctx context.Context, query string, args ...any) ([]*models.WorkoutSession, error) {
	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
