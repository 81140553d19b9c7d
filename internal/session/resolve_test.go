// ABOUTME: Tests for exercise and set reference resolution.
// ABOUTME: Covers exact IDs, ID prefixes and template IDs.
package session_test

import (
	"context"
	"testing"

	"github.com/harperreed/lift/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Resolve(t *testing.T) {
	ctx := context.Background()
	ids := []string{"aaaa-session", "bbbb-bench", "bbcc-squat", "cccc-set1", "cccd-set2", "dddd-set3"}
	next := 0
	m, _, _ := newTestManager(t, session.WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))

	_, err := m.ResolveExercise("bb")
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)

	_, err = m.Start(ctx, "Resolve")
	require.NoError(t, err)
	_, err = m.AddExercise(ctx, bench)
	require.NoError(t, err)
	_, err = m.AddExercise(ctx, squat)
	require.NoError(t, err)
	for _, ex := range []string{"bbbb-bench", "bbbb-bench", "bbcc-squat"} {
		_, err := m.AddSet(ctx, ex)
		require.NoError(t, err)
	}

	exID, err := m.ResolveExercise("bbb")
	require.NoError(t, err)
	assert.Equal(t, "bbbb-bench", exID)

	exID, err = m.ResolveExercise("squat")
	require.NoError(t, err)
	assert.Equal(t, "bbcc-squat", exID)

	_, err = m.ResolveExercise("bb")
	assert.ErrorIs(t, err, session.ErrInvalidValue)
	_, err = m.ResolveExercise("zz")
	assert.ErrorIs(t, err, session.ErrNotFound)

	exID, setID, err := m.ResolveSet("cccd")
	require.NoError(t, err)
	assert.Equal(t, "bbbb-bench", exID)
	assert.Equal(t, "cccd-set2", setID)

	exID, setID, err = m.ResolveSet("dddd-set3")
	require.NoError(t, err)
	assert.Equal(t, "bbcc-squat", exID)
	assert.Equal(t, "dddd-set3", setID)

	_, _, err = m.ResolveSet("ccc")
	assert.ErrorIs(t, err, session.ErrInvalidValue)
	_, _, err = m.ResolveSet("")
	assert.ErrorIs(t, err, session.ErrInvalidValue)
	_, _, err = m.ResolveSet("eeee")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
