// ABOUTME: Exercise template catalog operations for Badger KV storage.
// ABOUTME: Templates are stored as JSON under the template: prefix.
package kvstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/lift/internal/models"
)

// CreateTemplate stores a new exercise template.
func (s *Store) CreateTemplate(ctx context.Context, t *models.ExerciseTemplate) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		return put(txn, TemplatePrefix+t.ID, t)
	})
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// GetTemplate retrieves an exercise template by ID.
func (s *Store) GetTemplate(ctx context.Context, id string) (*models.ExerciseTemplate, error) {
	var t *models.ExerciseTemplate
	err := s.view(ctx, func(txn *badger.Txn) error {
		data, err := get(txn, TemplatePrefix+id)
		if err != nil {
			return err
		}
		t, err = unmarshalJSON[models.ExerciseTemplate](data)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}
	return t, nil
}

// ListTemplates retrieves templates sorted by name, optionally filtered by muscle group.
func (s *Store) ListTemplates(ctx context.Context, muscleGroup *models.MuscleGroup) ([]*models.ExerciseTemplate, error) {
	var out []*models.ExerciseTemplate
	err := s.view(ctx, func(txn *badger.Txn) error {
		all, err := listDecoded[models.ExerciseTemplate](txn, TemplatePrefix, s.log)
		if err != nil {
			return err
		}
		for _, t := range all {
			if muscleGroup != nil && t.MuscleGroup != *muscleGroup {
				continue
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
