// ABOUTME: Active workout engine owning the single in-progress workout.
// ABOUTME: Validates every edit and persists it before changing memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
	"github.com/harperreed/lift/internal/strength"
	"github.com/harperreed/lift/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=store_mock_test.go -package=session_test github.com/harperreed/lift/internal/storage SessionStore

// DefaultWorkoutName is used when Start is given a blank name.
const DefaultWorkoutName = "Workout"

// Manager owns at most one active workout. All methods are safe for
// concurrent use; operations are serialised, including their storage calls.
type Manager struct {
	store           storage.SessionStore
	now             func() time.Time
	newID           func() string
	onSetCompleted  SetCompletionListener
	finishListeners []FinishListener
	metrics         *telemetry.Metrics
	log             logrus.FieldLogger

	mu     sync.Mutex
	active *models.ActiveWorkout

	notifications sync.WaitGroup
	closed        bool
}

// NewManager returns a Manager with no active workout that persists through
// store. Call Resume to pick up a workout left unfinished by an earlier run.
func NewManager(store storage.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics == nil {
		m.metrics = telemetry.NewMetrics("lift", "session", prometheus.NewRegistry())
	}
	return m
}

// Start begins a new workout and returns its session ID.
func (m *Manager) Start(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return "", ErrAlreadyActive
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultWorkoutName
	}

	ws := &models.WorkoutSession{
		ID:        m.newID(),
		Name:      name,
		StartedAt: m.now(),
	}
	if err := m.store.CreateSession(ctx, ws); err != nil {
		return "", m.persistenceError("start", err)
	}

	m.active = &models.ActiveWorkout{
		SessionID: ws.ID,
		Name:      ws.Name,
		StartedAt: ws.StartedAt,
		Exercises: []models.ActiveExercise{},
	}
	m.metrics.CounterWorkoutsStarted.Inc()
	m.metrics.GaugeActiveWorkout.Set(1)
	m.log.WithField("session_id", ws.ID).WithField("name", name).Info("workout started")

	return ws.ID, nil
}

// Resume loads the unfinished workout from storage, if there is one, and
// makes it the active workout. It reports whether a workout was resumed.
func (m *Manager) Resume(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return false, ErrAlreadyActive
	}

	detail, err := m.store.FindUnfinishedSession(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, m.persistenceError("resume", err)
	}

	active := detail.ToActive()
	for i := range active.Exercises {
		if active.Exercises[i].Sets == nil {
			active.Exercises[i].Sets = []models.WorkoutSet{}
		}
	}
	m.active = &active
	m.metrics.GaugeActiveWorkout.Set(1)
	m.log.WithField("session_id", active.SessionID).Debug("workout resumed")

	return true, nil
}

// Active returns a copy of the active workout.
func (m *Manager) Active() (models.ActiveWorkout, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return models.ActiveWorkout{}, false
	}
	return m.active.Clone(), true
}

// AddExercise appends an exercise for the template and returns its ID.
func (m *Manager) AddExercise(ctx context.Context, template models.ExerciseTemplate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return "", ErrNoActiveWorkout
	}
	if template.ID == "" {
		return "", fmt.Errorf("exercise template without ID: %w", ErrInvalidValue)
	}

	ex := &models.WorkoutExercise{
		ID:                 m.newID(),
		SessionID:          m.active.SessionID,
		ExerciseTemplateID: template.ID,
		OrderIndex:         len(m.active.Exercises),
	}
	if err := m.store.CreateExercise(ctx, ex); err != nil {
		return "", m.persistenceError("add_exercise", err)
	}

	m.active.Exercises = append(m.active.Exercises, models.ActiveExercise{
		WorkoutExercise: *ex,
		Sets:            []models.WorkoutSet{},
	})
	m.log.WithField("exercise_id", ex.ID).WithField("template_id", template.ID).Debug("exercise added")

	return ex.ID, nil
}

// AddSet appends a set to the exercise and returns its ID. Weight and reps are
// copied from the exercise's last set.
func (m *Manager) AddSet(ctx context.Context, exerciseID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, err := m.findExercise(exerciseID)
	if err != nil {
		return "", err
	}
	sets := m.active.Exercises[i].Sets

	set := models.WorkoutSet{
		ID:         m.newID(),
		ExerciseID: exerciseID,
		SetNumber:  len(sets) + 1,
	}
	if len(sets) > 0 {
		last := sets[len(sets)-1].Clone()
		set.WeightKg = last.WeightKg
		set.Reps = last.Reps
	}

	stored := set.Clone()
	if err := m.store.CreateSet(ctx, &stored); err != nil {
		return "", m.persistenceError("add_set", err)
	}

	m.active.Exercises[i].Sets = append(m.active.Exercises[i].Sets, set)
	m.log.WithField("set_id", set.ID).WithField("set_number", set.SetNumber).Debug("set added")

	return set.ID, nil
}

// UpdateSet changes the weight, reps, duration, RPE or warmup flag of a set.
// Weight and reps of a completed set cannot change until it is uncompleted.
func (m *Manager) UpdateSet(ctx context.Context, exerciseID, setID string, patch models.SetPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, j, err := m.findSet(exerciseID, setID)
	if err != nil {
		return err
	}
	if err := validateSetPatch(patch); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}

	set := &m.active.Exercises[i].Sets[j]
	if set.IsCompleted && patch.TouchesWorkingNumbers() {
		return fmt.Errorf("set %s is completed, uncomplete it before changing weight or reps: %w", setID, ErrInvalidState)
	}

	if err := m.store.UpdateSet(ctx, setID, patch); err != nil {
		return m.persistenceError("update_set", err)
	}

	patch.Apply(set)
	return nil
}

// CompleteSet marks a set done and notifies the set completion listener.
// Completing a set that is already completed does nothing.
func (m *Manager) CompleteSet(ctx context.Context, exerciseID, setID string) error {
	changed, err := m.setCompletion(ctx, exerciseID, setID, true)
	if err != nil {
		return err
	}
	if changed && m.onSetCompleted != nil {
		m.onSetCompleted.OnSetCompleted(exerciseID, setID)
	}
	return nil
}

// UncompleteSet reverts CompleteSet. Weight and reps are untouched.
func (m *Manager) UncompleteSet(ctx context.Context, exerciseID, setID string) error {
	_, err := m.setCompletion(ctx, exerciseID, setID, false)
	return err
}

func (m *Manager) setCompletion(ctx context.Context, exerciseID, setID string, completed bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, j, err := m.findSet(exerciseID, setID)
	if err != nil {
		return false, err
	}
	set := &m.active.Exercises[i].Sets[j]
	if set.IsCompleted == completed {
		return false, nil
	}

	patch := models.SetPatch{IsCompleted: models.Bool(completed)}
	op := "uncomplete_set"
	if completed {
		now := m.now()
		patch.CompletedAt = &now
		op = "complete_set"
	} else {
		patch.ClearCompletedAt = true
	}

	if err := m.store.UpdateSet(ctx, setID, patch); err != nil {
		return false, m.persistenceError(op, err)
	}

	patch.Apply(set)
	if completed {
		m.metrics.CounterSetsCompleted.Inc()
	}
	m.log.WithField("set_id", setID).WithField("completed", completed).Debug("set completion changed")

	return true, nil
}

// RemoveSet deletes a set and renumbers the remaining sets of the exercise
// 1..n in their current order.
func (m *Manager) RemoveSet(ctx context.Context, exerciseID, setID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, j, err := m.findSet(exerciseID, setID)
	if err != nil {
		return err
	}

	old := m.active.Exercises[i].Sets
	remaining := make([]models.WorkoutSet, 0, len(old)-1)
	remaining = append(remaining, old[:j]...)
	remaining = append(remaining, old[j+1:]...)

	err = m.store.WithinTx(ctx, func(tx storage.SessionStore) error {
		if err := tx.DeleteSet(ctx, setID); err != nil {
			return err
		}
		for k := range remaining {
			if remaining[k].SetNumber == k+1 {
				continue
			}
			if err := tx.UpdateSet(ctx, remaining[k].ID, models.SetPatch{SetNumber: models.Int(k + 1)}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return m.persistenceError("remove_set", err)
	}

	for k := range remaining {
		remaining[k].SetNumber = k + 1
	}
	m.active.Exercises[i].Sets = remaining
	m.log.WithField("set_id", setID).Debug("set removed")

	return nil
}

// RemoveExercise deletes an exercise with its sets and closes the gap in the
// order of the remaining exercises.
func (m *Manager) RemoveExercise(ctx context.Context, exerciseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, err := m.findExercise(exerciseID)
	if err != nil {
		return err
	}

	old := m.active.Exercises
	remaining := make([]models.ActiveExercise, 0, len(old)-1)
	remaining = append(remaining, old[:i]...)
	remaining = append(remaining, old[i+1:]...)

	err = m.store.WithinTx(ctx, func(tx storage.SessionStore) error {
		if err := tx.DeleteExercise(ctx, exerciseID); err != nil {
			return err
		}
		for k := range remaining {
			if remaining[k].OrderIndex == k {
				continue
			}
			if err := tx.UpdateExerciseOrder(ctx, remaining[k].ID, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return m.persistenceError("remove_exercise", err)
	}

	for k := range remaining {
		remaining[k].OrderIndex = k
	}
	m.active.Exercises = remaining
	m.log.WithField("exercise_id", exerciseID).Debug("exercise removed")

	return nil
}

// RenameWorkout renames the active workout. The new name is stored right away.
func (m *Manager) RenameWorkout(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoActiveWorkout
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("workout name is empty: %w", ErrInvalidValue)
	}

	if err := m.store.UpdateSession(ctx, m.active.SessionID, models.SessionPatch{Name: &name}); err != nil {
		return m.persistenceError("rename_workout", err)
	}

	m.active.Name = name
	return nil
}

// SetNotes replaces the notes of the active workout.
func (m *Manager) SetNotes(ctx context.Context, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoActiveWorkout
	}

	if err := m.store.UpdateSession(ctx, m.active.SessionID, models.SessionPatch{Notes: &notes}); err != nil {
		return m.persistenceError("set_notes", err)
	}

	m.active.Notes = &notes
	return nil
}

// Finish stores duration and volume, ends the active workout and returns its
// ID. finished is false, with no error, when no workout is active.
func (m *Manager) Finish(ctx context.Context) (sessionID string, finished bool, err error) {
	summary, async, ok, err := m.finish(ctx)
	if err != nil || !ok {
		return "", false, err
	}

	for _, l := range m.finishListeners {
		if !async {
			m.notifyFinished(l, summary)
			continue
		}
		go func(l FinishListener) {
			defer m.notifications.Done()
			m.notifyFinished(l, summary)
		}(l)
	}
	return summary.SessionID, true, nil
}

// finish reports async=true when it has already counted the listener
// goroutines on the wait group. After Close, listeners run inline.
func (m *Manager) finish(ctx context.Context) (summary FinishSummary, async, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return FinishSummary{}, false, false, nil
	}

	now := m.now()
	duration := int(now.Sub(m.active.StartedAt) / time.Second)
	if duration < 0 {
		duration = 0
	}
	volume := strength.SessionVolume(*m.active)
	name := m.active.Name

	patch := models.SessionPatch{
		Name:            &name,
		FinishedAt:      &now,
		DurationSeconds: &duration,
		TotalVolumeKg:   &volume,
	}
	if err := m.store.UpdateSession(ctx, m.active.SessionID, patch); err != nil {
		return FinishSummary{}, false, false, m.persistenceError("finish", err)
	}

	summary = FinishSummary{
		SessionID:       m.active.SessionID,
		Name:            name,
		StartedAt:       m.active.StartedAt,
		FinishedAt:      now,
		DurationSeconds: duration,
		TotalVolumeKg:   volume,
		ExerciseCount:   len(m.active.Exercises),
	}
	for _, ex := range m.active.Exercises {
		for _, s := range ex.Sets {
			if s.IsCompleted {
				summary.CompletedSets++
			}
		}
	}

	m.active = nil
	m.metrics.CounterWorkoutsFinished.Inc()
	m.metrics.GaugeActiveWorkout.Set(0)
	m.metrics.HistWorkoutVolume.Observe(volume)
	m.metrics.HistWorkoutDuration.Observe(float64(duration))
	m.log.WithFields(logrus.Fields{
		"session_id": summary.SessionID,
		"duration":   duration,
		"volume_kg":  volume,
	}).Info("workout finished")

	if !m.closed {
		m.notifications.Add(len(m.finishListeners))
	}
	return summary, !m.closed, true, nil
}

func (m *Manager) notifyFinished(l FinishListener, summary FinishSummary) {
	defer func() {
		if r := recover(); r != nil {
			m.log.WithField("session_id", summary.SessionID).Errorf("finish listener panicked: %v", r)
		}
	}()
	l.OnWorkoutFinished(summary)
}

// Discard deletes the active workout with all its exercises and sets.
func (m *Manager) Discard(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoActiveWorkout
	}

	if err := m.store.DeleteSession(ctx, m.active.SessionID); err != nil {
		return m.persistenceError("discard", err)
	}

	m.log.WithField("session_id", m.active.SessionID).Info("workout discarded")
	m.active = nil
	m.metrics.CounterWorkoutsDiscarded.Inc()
	m.metrics.GaugeActiveWorkout.Set(0)

	return nil
}

// Close waits for finish listeners that are still running. Listeners of
// workouts finished after Close run before Finish returns.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.notifications.Wait()
}

func (m *Manager) findExercise(exerciseID string) (int, error) {
	if m.active == nil {
		return -1, ErrNoActiveWorkout
	}
	for i, ex := range m.active.Exercises {
		if ex.ID == exerciseID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
}

func (m *Manager) findSet(exerciseID, setID string) (int, int, error) {
	i, err := m.findExercise(exerciseID)
	if err != nil {
		return -1, -1, err
	}
	for j, s := range m.active.Exercises[i].Sets {
		if s.ID == setID {
			return i, j, nil
		}
	}
	return -1, -1, fmt.Errorf("set %s of exercise %s: %w", setID, exerciseID, ErrNotFound)
}

func (m *Manager) persistenceError(op string, err error) error {
	m.metrics.CounterPersistenceErrors.WithLabelValues(op).Inc()
	m.log.WithError(err).WithField("op", op).Warn("storage write failed")
	return &PersistenceError{Op: op, Err: err}
}

// validateSetPatch accepts only caller-editable fields with sane values.
func validateSetPatch(p models.SetPatch) error {
	if p.IsCompleted != nil || p.CompletedAt != nil || p.ClearCompletedAt || p.SetNumber != nil {
		return fmt.Errorf("completion and set number cannot be edited directly: %w", ErrInvalidValue)
	}
	if p.WeightKg != nil && !isFinite(*p.WeightKg) {
		return fmt.Errorf("weight %v kg is not a number: %w", *p.WeightKg, ErrInvalidValue)
	}
	if p.WeightKg != nil && *p.WeightKg < 0 {
		return fmt.Errorf("weight %v kg is negative: %w", *p.WeightKg, ErrInvalidValue)
	}
	if p.Reps != nil && *p.Reps < 0 {
		return fmt.Errorf("reps %d is negative: %w", *p.Reps, ErrInvalidValue)
	}
	if p.DurationSeconds != nil && *p.DurationSeconds < 0 {
		return fmt.Errorf("duration %ds is negative: %w", *p.DurationSeconds, ErrInvalidValue)
	}
	if p.RPE != nil && (!isFinite(*p.RPE) || *p.RPE < 1 || *p.RPE > 10) {
		return fmt.Errorf("RPE %v outside 1-10: %w", *p.RPE, ErrInvalidValue)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
