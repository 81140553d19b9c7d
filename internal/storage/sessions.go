// ABOUTME: Workout session, exercise and set CRUD operations for SQLite storage.
// ABOUTME: Implements the SessionStore port with cascade deletes and ID prefix resolution.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/lift/internal/models"
)

const (
	sessionColumns  = "id, name, started_at, finished_at, duration_seconds, total_volume_kg, notes"
	exerciseColumns = "id, session_id, exercise_template_id, order_index, notes"
	setColumns      = "id, exercise_id, set_number, weight_kg, reps, duration_seconds, rpe, is_warmup, is_completed, completed_at"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// CreateSession stores a new workout session.
func (d *DB) CreateSession(ctx context.Context, s *models.WorkoutSession) error {
	_, err := d.q.ExecContext(ctx, `
		INSERT INTO workout_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, formatTime(s.StartedAt), formatNullTime(s.FinishedAt),
		s.DurationSeconds, s.TotalVolumeKg, s.Notes,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// UpdateSession applies a partial update to a session.
func (d *DB) UpdateSession(ctx context.Context, id string, patch models.SessionPatch) error {
	var cols []string
	var args []any

	if patch.Name != nil {
		cols = append(cols, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.FinishedAt != nil {
		cols = append(cols, "finished_at = ?")
		args = append(args, formatTime(*patch.FinishedAt))
	}
	if patch.DurationSeconds != nil {
		cols = append(cols, "duration_seconds = ?")
		args = append(args, *patch.DurationSeconds)
	}
	if patch.TotalVolumeKg != nil {
		cols = append(cols, "total_volume_kg = ?")
		args = append(args, *patch.TotalVolumeKg)
	}
	if patch.Notes != nil {
		cols = append(cols, "notes = ?")
		args = append(args, *patch.Notes)
	}

	if err := d.execUpdate(ctx, "workout_sessions", id, cols, args); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// DeleteSession removes a session, its exercises and its sets (cascade delete).
func (d *DB) DeleteSession(ctx context.Context, id string) error {
	if err := d.execDelete(ctx, "workout_sessions", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CreateExercise stores a new exercise within a session.
func (d *DB) CreateExercise(ctx context.Context, e *models.WorkoutExercise) error {
	_, err := d.q.ExecContext(ctx, `
		INSERT INTO workout_exercises (`+exerciseColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.ExerciseTemplateID, e.OrderIndex, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// UpdateExerciseOrder moves an exercise to a new position.
func (d *DB) UpdateExerciseOrder(ctx context.Context, id string, orderIndex int) error {
	err := d.execUpdate(ctx, "workout_exercises", id, []string{"order_index = ?"}, []any{orderIndex})
	if err != nil {
		return fmt.Errorf("update exercise order: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise and its sets (cascade delete).
func (d *DB) DeleteExercise(ctx context.Context, id string) error {
	if err := d.execDelete(ctx, "workout_exercises", id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// CreateSet stores a new set of an exercise.
func (d *DB) CreateSet(ctx context.Context, s *models.WorkoutSet) error {
	_, err := d.q.ExecContext(ctx, `
		INSERT INTO workout_sets (`+setColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ExerciseID, s.SetNumber, s.WeightKg, s.Reps, s.DurationSeconds, s.RPE,
		s.IsWarmup, s.IsCompleted, formatNullTime(s.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("create set: %w", err)
	}
	return nil
}

// UpdateSet applies a partial update to a set.
func (d *DB) UpdateSet(ctx context.Context, id string, patch models.SetPatch) error {
	var cols []string
	var args []any

	if patch.WeightKg != nil {
		cols = append(cols, "weight_kg = ?")
		args = append(args, *patch.WeightKg)
	}
	if patch.Reps != nil {
		cols = append(cols, "reps = ?")
		args = append(args, *patch.Reps)
	}
	if patch.DurationSeconds != nil {
		cols = append(cols, "duration_seconds = ?")
		args = append(args, *patch.DurationSeconds)
	}
	if patch.RPE != nil {
		cols = append(cols, "rpe = ?")
		args = append(args, *patch.RPE)
	}
	if patch.IsWarmup != nil {
		cols = append(cols, "is_warmup = ?")
		args = append(args, *patch.IsWarmup)
	}
	if patch.IsCompleted != nil {
		cols = append(cols, "is_completed = ?")
		args = append(args, *patch.IsCompleted)
	}
	if patch.CompletedAt != nil {
		cols = append(cols, "completed_at = ?")
		args = append(args, formatTime(*patch.CompletedAt))
	}
	if patch.ClearCompletedAt {
		cols = append(cols, "completed_at = NULL")
	}
	if patch.SetNumber != nil {
		cols = append(cols, "set_number = ?")
		args = append(args, *patch.SetNumber)
	}

	if err := d.execUpdate(ctx, "workout_sets", id, cols, args); err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return nil
}

// DeleteSet removes a set.
func (d *DB) DeleteSet(ctx context.Context, id string) error {
	if err := d.execDelete(ctx, "workout_sets", id); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

// FindUnfinishedSession returns the most recently started unfinished session.
func (d *DB) FindUnfinishedSession(ctx context.Context) (*models.SessionDetail, error) {
	row := d.q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_sessions
		WHERE finished_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1`)

	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("find unfinished session: %w", err)
	}
	return d.loadDetail(ctx, s)
}

// GetSessionDetail retrieves a session by ID or ID prefix with its exercises and sets.
func (d *DB) GetSessionDetail(ctx context.Context, idOrPrefix string) (*models.SessionDetail, error) {
	id, err := d.resolveSessionID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.q.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM workout_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return d.loadDetail(ctx, s)
}

// loadDetail attaches exercises and sets, both in order, to a session.
func (d *DB) loadDetail(ctx context.Context, s *models.WorkoutSession) (*models.SessionDetail, error) {
	detail := &models.SessionDetail{WorkoutSession: *s}

	rows, err := d.q.QueryContext(ctx, `
		SELECT `+exerciseColumns+`
		FROM workout_exercises
		WHERE session_id = ?
		ORDER BY order_index ASC`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	index := make(map[string]int)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[e.ID] = len(detail.Exercises)
		detail.Exercises = append(detail.Exercises, models.ExerciseDetail{WorkoutExercise: *e})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	sets, err := d.querySets(ctx, `
		SELECT `+prefixColumns("ws", setColumns)+`
		FROM workout_sets ws
		JOIN workout_exercises we ON we.id = ws.exercise_id
		WHERE we.session_id = ?
		ORDER BY we.order_index ASC, ws.set_number ASC`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	for _, set := range sets {
		i, ok := index[set.ExerciseID]
		if !ok {
			continue
		}
		detail.Exercises[i].Sets = append(detail.Exercises[i].Sets, set)
	}

	return detail, nil
}

// querySets runs a set query and reads every row before returning.
func (d *DB) querySets(ctx context.Context, query string, args ...any) ([]models.WorkoutSet, error) {
	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []models.WorkoutSet
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *s)
	}
	return sets, rows.Err()
}

// execUpdate runs an UPDATE of the given columns and reports ErrNotFound when
// no row matched. An update with no columns only checks existence.
func (d *DB) execUpdate(ctx context.Context, table, id string, cols []string, args []any) error {
	if len(cols) == 0 {
		var exists int
		err := d.q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}

	query := "UPDATE " + table + " SET " + strings.Join(cols, ", ") + " WHERE id = ?"
	result, err := d.q.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return err
	}
	return checkAffected(result, id)
}

func (d *DB) execDelete(ctx context.Context, table, id string) error {
	result, err := d.q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkAffected(result, id)
}

func checkAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// resolveSessionID finds the full ID from a prefix.
func (d *DB) resolveSessionID(ctx context.Context, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.q.QueryContext(ctx, `SELECT id FROM workout_sessions WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve session ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan session ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve session ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

func prefixColumns(alias, cols string) string {
	parts := strings.Split(cols, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

func scanSession(row scanner) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	var startedAt string
	var finishedAt, notes sql.NullString

	err := row.Scan(&s.ID, &s.Name, &startedAt, &finishedAt, &s.DurationSeconds, &s.TotalVolumeKg, &notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.StartedAt = parseTime(startedAt)
	if finishedAt.Valid {
		t := parseTime(finishedAt.String)
		s.FinishedAt = &t
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	return &s, nil
}

func scanExercise(row scanner) (*models.WorkoutExercise, error) {
	var e models.WorkoutExercise
	var notes sql.NullString

	if err := row.Scan(&e.ID, &e.SessionID, &e.ExerciseTemplateID, &e.OrderIndex, &notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	if notes.Valid {
		e.Notes = &notes.String
	}
	return &e, nil
}

func scanSet(row scanner) (*models.WorkoutSet, error) {
	var s models.WorkoutSet
	var weight, rpe sql.NullFloat64
	var reps, duration sql.NullInt64
	var completedAt sql.NullString

	err := row.Scan(&s.ID, &s.ExerciseID, &s.SetNumber, &weight, &reps, &duration, &rpe,
		&s.IsWarmup, &s.IsCompleted, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan set: %w", err)
	}

	if weight.Valid {
		s.WeightKg = models.Float(weight.Float64)
	}
	if reps.Valid {
		s.Reps = models.Int(int(reps.Int64))
	}
	if duration.Valid {
		s.DurationSeconds = models.Int(int(duration.Int64))
	}
	if rpe.Valid {
		s.RPE = models.Float(rpe.Float64)
	}
	if completedAt.Valid {
		t := parseTime(completedAt.String)
		s.CompletedAt = &t
	}
	return &s, nil
}
