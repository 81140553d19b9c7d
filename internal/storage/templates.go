// ABOUTME: Exercise template catalog operations for SQLite storage.
// ABOUTME: Implements the Catalog port with optional muscle group filtering.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/lift/internal/models"
)

const templateColumns = "id, name, muscle_group, equipment, is_custom, created_at"

// CreateTemplate stores a new exercise template.
func (d *DB) CreateTemplate(ctx context.Context, t *models.ExerciseTemplate) error {
	_, err := d.q.ExecContext(ctx, `
		INSERT INTO exercise_templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, string(t.MuscleGroup), t.Equipment, t.IsCustom, formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// GetTemplate retrieves an exercise template by ID.
func (d *DB) GetTemplate(ctx context.Context, id string) (*models.ExerciseTemplate, error) {
	row := d.q.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM exercise_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}
	return t, nil
}

// ListTemplates retrieves templates sorted by name, optionally filtered by muscle group.
func (d *DB) ListTemplates(ctx context.Context, muscleGroup *models.MuscleGroup) ([]*models.ExerciseTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM exercise_templates`
	var args []any

	if muscleGroup != nil {
		query += ` WHERE muscle_group = ?`
		args = append(args, string(*muscleGroup))
	}
	query += ` ORDER BY name COLLATE NOCASE ASC`

	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.ExerciseTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func scanTemplate(row scanner) (*models.ExerciseTemplate, error) {
	var t models.ExerciseTemplate
	var muscleGroup, createdAt string

	err := row.Scan(&t.ID, &t.Name, &muscleGroup, &t.Equipment, &t.IsCustom, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}

	t.MuscleGroup = models.MuscleGroup(muscleGroup)
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}
