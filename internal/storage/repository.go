// ABOUTME: Storage interfaces consumed by the workout engine, analyzer and CLI.
// ABOUTME: Defines the persistence port, exercise catalog and history reader contracts.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/lift/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnfinishedConflict is returned when a write would leave more than one
// unfinished session.
var ErrUnfinishedConflict = errors.New("another session is unfinished")

// SessionStore is the durable system of record for sessions, exercises and sets.
// IDs are generated by the caller.
type SessionStore interface {
	CreateSession(ctx context.Context, s *models.WorkoutSession) error
	UpdateSession(ctx context.Context, id string, patch models.SessionPatch) error
	// DeleteSession removes the session with its exercises and sets.
	DeleteSession(ctx context.Context, id string) error

	CreateExercise(ctx context.Context, e *models.WorkoutExercise) error
	UpdateExerciseOrder(ctx context.Context, id string, orderIndex int) error
	// DeleteExercise removes the exercise with its sets.
	DeleteExercise(ctx context.Context, id string) error

	CreateSet(ctx context.Context, s *models.WorkoutSet) error
	UpdateSet(ctx context.Context, id string, patch models.SetPatch) error
	DeleteSet(ctx context.Context, id string) error

	// FindUnfinishedSession returns the most recent session without a finish
	// time, with exercises and sets in order, or ErrNotFound.
	FindUnfinishedSession(ctx context.Context) (*models.SessionDetail, error)

	// WithinTx runs fn against a store whose writes commit together or not at all.
	WithinTx(ctx context.Context, fn func(tx SessionStore) error) error
}

// Catalog provides exercise templates.
type Catalog interface {
	GetTemplate(ctx context.Context, id string) (*models.ExerciseTemplate, error)
	ListTemplates(ctx context.Context, muscleGroup *models.MuscleGroup) ([]*models.ExerciseTemplate, error)
	CreateTemplate(ctx context.Context, t *models.ExerciseTemplate) error
}

// HistoryReader reads finished sessions.
type HistoryReader interface {
	// RecentFinishedSessionsForExercise returns up to limit finished sessions
	// containing the template, most recent first, each with the completed sets
	// of that template.
	RecentFinishedSessionsForExercise(ctx context.Context, templateID string, limit int) ([]models.SessionHistory, error)
	// ListFinishedSessions returns finished sessions, most recent first. A limit of 0 means all.
	ListFinishedSessions(ctx context.Context, limit int) ([]*models.WorkoutSession, error)
	// GetSessionDetail returns a session by ID or ID prefix with exercises and sets.
	GetSessionDetail(ctx context.Context, idOrPrefix string) (*models.SessionDetail, error)
}

// Repository is everything a storage backend provides.
type Repository interface {
	SessionStore
	Catalog
	HistoryReader

	Close() error
}
