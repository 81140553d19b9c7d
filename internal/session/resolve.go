// ABOUTME: Resolves exercise and set references in the active workout.
// ABOUTME: Accepts full IDs, unique ID prefixes and template IDs.
package session

import (
	"fmt"
	"strings"
)

// ResolveExercise finds an exercise of the active workout by ID, unique ID
// prefix or exercise template ID.
func (m *Manager) ResolveExercise(ref string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return "", ErrNoActiveWorkout
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty exercise reference: %w", ErrInvalidValue)
	}

	var byPrefix, byTemplate []string
	for _, ex := range m.active.Exercises {
		if ex.ID == ref {
			return ex.ID, nil
		}
		if strings.HasPrefix(ex.ID, ref) {
			byPrefix = append(byPrefix, ex.ID)
		}
		if ex.ExerciseTemplateID == ref {
			byTemplate = append(byTemplate, ex.ID)
		}
	}
	return pick("exercise", ref, byPrefix, byTemplate)
}

// ResolveSet finds a set of the active workout by ID or unique ID prefix and
// returns it together with its exercise.
func (m *Manager) ResolveSet(ref string) (exerciseID, setID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return "", "", ErrNoActiveWorkout
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", fmt.Errorf("empty set reference: %w", ErrInvalidValue)
	}

	var matches [][2]string
	for _, ex := range m.active.Exercises {
		for _, s := range ex.Sets {
			if s.ID == ref {
				return ex.ID, s.ID, nil
			}
			if strings.HasPrefix(s.ID, ref) {
				matches = append(matches, [2]string{ex.ID, s.ID})
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("set %s: %w", ref, ErrNotFound)
	case 1:
		return matches[0][0], matches[0][1], nil
	default:
		return "", "", fmt.Errorf("set prefix %s matches %d sets: %w", ref, len(matches), ErrInvalidValue)
	}
}

func pick(kind, ref string, candidates ...[]string) (string, error) {
	for _, c := range candidates {
		switch len(c) {
		case 0:
			continue
		case 1:
			return c[0], nil
		default:
			return "", fmt.Errorf("%s reference %s matches %d entries: %w", kind, ref, len(c), ErrInvalidValue)
		}
	}
	return "", fmt.Errorf("%s %s: %w", kind, ref, ErrNotFound)
}
