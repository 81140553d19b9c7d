// ABOUTME: Functional options for the workout engine.
// ABOUTME: Clock, ID generator, listeners, metrics and logger.
package session

import (
	"time"

	"github.com/harperreed/lift/internal/telemetry"
	"github.com/sirupsen/logrus"
)

type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator replaces uuid.NewString for session, exercise and set IDs.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

func WithSetCompletionListener(l SetCompletionListener) Option {
	return func(m *Manager) {
		m.onSetCompleted = l
	}
}

// WithFinishListener adds a listener; it may be given more than once.
func WithFinishListener(l FinishListener) Option {
	return func(m *Manager) {
		m.finishListeners = append(m.finishListeners, l)
	}
}

func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.log = log
	}
}
