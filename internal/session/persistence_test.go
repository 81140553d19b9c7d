// ABOUTME: Tests for storage failures in the workout engine.
// ABOUTME: Injects errors with a mocked SessionStore.
package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/storage"
	"github.com/harperreed/lift/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDiskFull = errors.New("disk full")

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

// newMockedManager returns a manager with one active workout holding one
// exercise (id-02) and two sets (id-03 completed, id-04 pending).
func newMockedManager(t *testing.T) (*session.Manager, *MockSessionStore, *telemetry.Metrics) {
	t.Helper()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockSessionStore(ctrl)
	metrics := telemetry.NewTestMetrics()
	clock := newFakeClock()

	m := session.NewManager(store,
		session.WithClock(clock.Now),
		session.WithIDGenerator(sequentialIDs()),
		session.WithMetrics(metrics),
	)
	t.Cleanup(m.Close)

	store.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().CreateExercise(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().CreateSet(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	store.EXPECT().UpdateSet(gomock.Any(), "id-03", gomock.Any()).Return(nil).Times(2)

	_, err := m.Start(ctx, "Mocked")
	require.NoError(t, err)
	_, err = m.AddExercise(ctx, bench)
	require.NoError(t, err)
	_, err = m.AddSet(ctx, "id-02")
	require.NoError(t, err)
	_, err = m.AddSet(ctx, "id-02")
	require.NoError(t, err)
	setWork(t, m, "id-02", "id-03", 100, 5)
	require.NoError(t, m.CompleteSet(ctx, "id-02", "id-03"))

	return m, store, metrics
}

func TestPersistenceFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		op     string
		expect func(store *MockSessionStore)
		call   func(m *session.Manager) error
	}{
		{
			name: "add exercise",
			op:   "add_exercise",
			expect: func(store *MockSessionStore) {
				store.EXPECT().CreateExercise(gomock.Any(), gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				_, err := m.AddExercise(ctx, squat)
				return err
			},
		},
		{
			name: "add set",
			op:   "add_set",
			expect: func(store *MockSessionStore) {
				store.EXPECT().CreateSet(gomock.Any(), gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				_, err := m.AddSet(ctx, "id-02")
				return err
			},
		},
		{
			name: "update set",
			op:   "update_set",
			expect: func(store *MockSessionStore) {
				store.EXPECT().UpdateSet(gomock.Any(), "id-04", gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.UpdateSet(ctx, "id-02", "id-04", models.SetPatch{WeightKg: models.Float(120)})
			},
		},
		{
			name: "complete set",
			op:   "complete_set",
			expect: func(store *MockSessionStore) {
				store.EXPECT().UpdateSet(gomock.Any(), "id-04", gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.CompleteSet(ctx, "id-02", "id-04")
			},
		},
		{
			name: "uncomplete set",
			op:   "uncomplete_set",
			expect: func(store *MockSessionStore) {
				store.EXPECT().UpdateSet(gomock.Any(), "id-03", gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.UncompleteSet(ctx, "id-02", "id-03")
			},
		},
		{
			name: "remove set renumbering fails inside transaction",
			op:   "remove_set",
			expect: func(store *MockSessionStore) {
				store.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(storage.SessionStore) error) error {
						return fn(store)
					})
				store.EXPECT().DeleteSet(gomock.Any(), "id-03").Return(nil)
				store.EXPECT().UpdateSet(gomock.Any(), "id-04", models.SetPatch{SetNumber: models.Int(1)}).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.RemoveSet(ctx, "id-02", "id-03")
			},
		},
		{
			name: "remove exercise",
			op:   "remove_exercise",
			expect: func(store *MockSessionStore) {
				store.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(storage.SessionStore) error) error {
						return fn(store)
					})
				store.EXPECT().DeleteExercise(gomock.Any(), "id-02").Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.RemoveExercise(ctx, "id-02")
			},
		},
		{
			name: "rename",
			op:   "rename_workout",
			expect: func(store *MockSessionStore) {
				store.EXPECT().UpdateSession(gomock.Any(), "id-01", gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.RenameWorkout(ctx, "Renamed")
			},
		},
		{
			name: "notes",
			op:   "set_notes",
			expect: func(store *MockSessionStore) {
				store.EXPECT().UpdateSession(gomock.Any(), "id-01", gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.SetNotes(ctx, "tired")
			},
		},
		{
			name: "finish",
			op:   "finish",
			expect: func(store *MockSessionStore) {
				store.EXPECT().UpdateSession(gomock.Any(), "id-01", gomock.Any()).Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				_, _, err := m.Finish(ctx)
				return err
			},
		},
		{
			name: "discard",
			op:   "discard",
			expect: func(store *MockSessionStore) {
				store.EXPECT().DeleteSession(gomock.Any(), "id-01").Return(errDiskFull)
			},
			call: func(m *session.Manager) error {
				return m.Discard(ctx)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, store, metrics := newMockedManager(t)
			before, ok := m.Active()
			require.True(t, ok)

			tc.expect(store)
			err := tc.call(m)

			var perr *session.PersistenceError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.op, perr.Op)
			assert.ErrorIs(t, err, errDiskFull)

			after, ok := m.Active()
			require.True(t, ok, "workout is still active")
			assert.Equal(t, before, after)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CounterPersistenceErrors.WithLabelValues(tc.op)))
		})
	}
}

func TestStartFailureStaysIdle(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockSessionStore(ctrl)
	metrics := telemetry.NewTestMetrics()
	m := session.NewManager(store, session.WithMetrics(metrics))
	defer m.Close()

	store.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(errDiskFull)

	_, err := m.Start(ctx, "Nope")
	var perr *session.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "start", perr.Op)

	_, active := m.Active()
	assert.False(t, active)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CounterWorkoutsStarted))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.GaugeActiveWorkout))
}

func TestValidationErrorsSkipStorage(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newMockedManager(t)

	// The mock fails the test on any unexpected call.
	_, err := m.Start(ctx, "Second")
	assert.ErrorIs(t, err, session.ErrAlreadyActive)
	assert.ErrorIs(t, m.UpdateSet(ctx, "id-02", "id-03", models.SetPatch{Reps: models.Int(6)}), session.ErrInvalidState)
	assert.ErrorIs(t, m.UpdateSet(ctx, "id-02", "id-04", models.SetPatch{RPE: models.Float(11)}), session.ErrInvalidValue)
	assert.ErrorIs(t, m.RemoveSet(ctx, "id-02", "nope"), session.ErrNotFound)
	assert.ErrorIs(t, m.RenameWorkout(ctx, ""), session.ErrInvalidValue)
	assert.NoError(t, m.CompleteSet(ctx, "id-02", "id-03"), "already completed")
	assert.NoError(t, m.UncompleteSet(ctx, "id-02", "id-04"), "already pending")
}

func TestResumeFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockSessionStore(ctrl)
	m := session.NewManager(store)
	defer m.Close()

	store.EXPECT().FindUnfinishedSession(gomock.Any()).Return(nil, errDiskFull)

	resumed, err := m.Resume(ctx)
	assert.False(t, resumed)
	var perr *session.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "resume", perr.Op)
}

func TestFinishMetrics(t *testing.T) {
	ctx := context.Background()
	m, store, metrics := newMockedManager(t)

	store.EXPECT().UpdateSession(gomock.Any(), "id-01", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch models.SessionPatch) error {
			require.NotNil(t, patch.TotalVolumeKg)
			assert.Equal(t, 500.0, *patch.TotalVolumeKg)
			require.NotNil(t, patch.FinishedAt)
			require.NotNil(t, patch.Name)
			assert.Equal(t, "Mocked", *patch.Name)
			return nil
		})

	_, finished, err := m.Finish(ctx)
	require.NoError(t, err)
	assert.True(t, finished)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CounterWorkoutsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CounterWorkoutsFinished))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CounterSetsCompleted))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.GaugeActiveWorkout))
}
