// ABOUTME: Session, exercise and set operations for Badger KV storage.
// ABOUTME: Handles cascade deletes and referential checks manually since KV has no foreign keys.
package kvstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
)

// CreateSession stores a new workout session.
func (s *Store) CreateSession(ctx context.Context, ws *models.WorkoutSession) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		return put(txn, SessionPrefix+ws.ID, ws)
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// UpdateSession applies a partial update to a session.
func (s *Store) UpdateSession(ctx context.Context, id string, patch models.SessionPatch) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		ws, err := getSession(txn, id)
		if err != nil {
			return err
		}
		patch.Apply(ws)
		return put(txn, SessionPrefix+id, ws)
	})
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// DeleteSession removes a session with its exercises and sets.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		if err := mustExist(txn, SessionPrefix+id); err != nil {
			return err
		}
		exercises, err := s.exercisesOf(txn, id)
		if err != nil {
			return err
		}
		for _, e := range exercises {
			if err := s.deleteExercise(txn, e.ID); err != nil {
				return err
			}
		}
		return txn.Delete([]byte(SessionPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CreateExercise stores a new exercise within an existing session.
func (s *Store) CreateExercise(ctx context.Context, e *models.WorkoutExercise) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		if err := mustExist(txn, SessionPrefix+e.SessionID); err != nil {
			return err
		}
		if err := mustExist(txn, TemplatePrefix+e.ExerciseTemplateID); err != nil {
			return err
		}
		return put(txn, ExercisePrefix+e.ID, e)
	})
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// UpdateExerciseOrder moves an exercise to a new position.
func (s *Store) UpdateExerciseOrder(ctx context.Context, id string, orderIndex int) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		data, err := get(txn, ExercisePrefix+id)
		if err != nil {
			return err
		}
		e, err := unmarshalJSON[models.WorkoutExercise](data)
		if err != nil {
			return err
		}
		e.OrderIndex = orderIndex
		return put(txn, ExercisePrefix+id, e)
	})
	if err != nil {
		return fmt.Errorf("update exercise order: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise and its sets.
func (s *Store) DeleteExercise(ctx context.Context, id string) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		return s.deleteExercise(txn, id)
	})
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

func (s *Store) deleteExercise(txn *badger.Txn, id string) error {
	if err := mustExist(txn, ExercisePrefix+id); err != nil {
		return err
	}
	sets, err := s.setsOf(txn, map[string]bool{id: true})
	if err != nil {
		return err
	}
	for _, set := range sets {
		if err := txn.Delete([]byte(SetPrefix + set.ID)); err != nil {
			return err
		}
	}
	return txn.Delete([]byte(ExercisePrefix + id))
}

// CreateSet stores a new set of an existing exercise.
func (s *Store) CreateSet(ctx context.Context, set *models.WorkoutSet) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		if err := mustExist(txn, ExercisePrefix+set.ExerciseID); err != nil {
			return err
		}
		return put(txn, SetPrefix+set.ID, set)
	})
	if err != nil {
		return fmt.Errorf("create set: %w", err)
	}
	return nil
}

// UpdateSet applies a partial update to a set.
func (s *Store) UpdateSet(ctx context.Context, id string, patch models.SetPatch) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		data, err := get(txn, SetPrefix+id)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		set, err := unmarshalJSON[models.WorkoutSet](data)
		if err != nil {
			return err
		}
		patch.Apply(set)
		return put(txn, SetPrefix+id, set)
	})
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return nil
}

// DeleteSet removes a set.
func (s *Store) DeleteSet(ctx context.Context, id string) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		return remove(txn, SetPrefix+id)
	})
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

// FindUnfinishedSession returns the most recently started unfinished session.
func (s *Store) FindUnfinishedSession(ctx context.Context) (*models.SessionDetail, error) {
	var detail *models.SessionDetail
	err := s.view(ctx, func(txn *badger.Txn) error {
		sessions, err := listDecoded[models.WorkoutSession](txn, SessionPrefix, s.log)
		if err != nil {
			return err
		}
		var latest *models.WorkoutSession
		for _, ws := range sessions {
			if ws.IsFinished() {
				continue
			}
			if latest == nil || ws.StartedAt.After(latest.StartedAt) {
				latest = ws
			}
		}
		if latest == nil {
			return storage.ErrNotFound
		}
		detail, err = s.loadDetail(txn, latest)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find unfinished session: %w", err)
	}
	return detail, nil
}

// GetSessionDetail retrieves a session by ID or ID prefix with its exercises and sets.
func (s *Store) GetSessionDetail(ctx context.Context, idOrPrefix string) (*models.SessionDetail, error) {
	var detail *models.SessionDetail
	err := s.view(ctx, func(txn *badger.Txn) error {
		keys := keysByIDPrefix(txn, SessionPrefix, idOrPrefix)
		if len(keys) == 0 {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, idOrPrefix)
		}
		if len(keys) > 1 {
			return fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
		}
		ws, err := getSession(txn, extractID(keys[0]))
		if err != nil {
			return err
		}
		detail, err = s.loadDetail(txn, ws)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// loadDetail attaches exercises and sets, both in order, to a session.
func (s *Store) loadDetail(txn *badger.Txn, ws *models.WorkoutSession) (*models.SessionDetail, error) {
	exercises, err := s.exercisesOf(txn, ws.ID)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(exercises))
	for _, e := range exercises {
		ids[e.ID] = true
	}
	sets, err := s.setsOf(txn, ids)
	if err != nil {
		return nil, err
	}

	byExercise := make(map[string][]models.WorkoutSet, len(exercises))
	for _, set := range sets {
		byExercise[set.ExerciseID] = append(byExercise[set.ExerciseID], *set)
	}

	detail := &models.SessionDetail{WorkoutSession: *ws}
	for _, e := range exercises {
		detail.Exercises = append(detail.Exercises, models.ExerciseDetail{
			WorkoutExercise: *e,
			Sets:            byExercise[e.ID],
		})
	}
	return detail, nil
}

// exercisesOf returns the exercises of a session sorted by position.
func (s *Store) exercisesOf(txn *badger.Txn, sessionID string) ([]*models.WorkoutExercise, error) {
	all, err := listDecoded[models.WorkoutExercise](txn, ExercisePrefix, s.log)
	if err != nil {
		return nil, err
	}
	var out []*models.WorkoutExercise
	for _, e := range all {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out, nil
}

// setsOf returns the sets belonging to any of the given exercises sorted by set number.
func (s *Store) setsOf(txn *badger.Txn, exerciseIDs map[string]bool) ([]*models.WorkoutSet, error) {
	all, err := listDecoded[models.WorkoutSet](txn, SetPrefix, s.log)
	if err != nil {
		return nil, err
	}
	var out []*models.WorkoutSet
	for _, set := range all {
		if exerciseIDs[set.ExerciseID] {
			out = append(out, set)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SetNumber < out[j].SetNumber
	})
	return out, nil
}

func getSession(txn *badger.Txn, id string) (*models.WorkoutSession, error) {
	data, err := get(txn, SessionPrefix+id)
	if err != nil {
		return nil, err
	}
	return unmarshalJSON[models.WorkoutSession](data)
}
