// ABOUTME: Prometheus metrics for the workout engine.
// ABOUTME: Counters, gauge and histograms registered on a caller-supplied registry.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors updated by the workout engine.
type Metrics struct {
	// counters
	CounterWorkoutsStarted   prometheus.Counter
	CounterWorkoutsFinished  prometheus.Counter
	CounterWorkoutsDiscarded prometheus.Counter
	CounterSetsCompleted     prometheus.Counter
	CounterPersistenceErrors *prometheus.CounterVec

	// gauges
	GaugeActiveWorkout prometheus.Gauge

	// histograms
	HistWorkoutVolume   prometheus.Histogram
	HistWorkoutDuration prometheus.Histogram
}

// NewTestMetrics returns metrics registered on a throwaway registry.
func NewTestMetrics() *Metrics {
	return NewMetrics("lift", "test", prometheus.NewRegistry())
}

// NewTestMetricsAndRegistry also returns the registry for gathering.
func NewTestMetricsAndRegistry() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewMetrics("lift", "test", reg), reg
}

// NewMetrics creates and registers the engine collectors on reg.
func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	counterWorkoutsStarted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_started_total",
		Help:      "The total number of started workouts",
	})
	counterWorkoutsFinished := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_finished_total",
		Help:      "The total number of finished workouts",
	})
	counterWorkoutsDiscarded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_discarded_total",
		Help:      "The total number of discarded workouts",
	})
	counterSetsCompleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sets_completed_total",
		Help:      "The total number of sets marked completed",
	})
	counterPersistenceErrors := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "persistence_errors_total",
		Help:      "The total number of failed storage writes",
	}, []string{"op"})

	gaugeActiveWorkout := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "active_workout",
		Help:      "Shows whether a workout is in progress",
	})

	histWorkoutVolume := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workout_volume_kg",
		Help:      "Total volume of finished workouts in kilograms",
		Buckets:   []float64{500, 1000, 2500, 5000, 7500, 10000, 15000, 20000, 30000},
	})
	histWorkoutDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workout_duration_seconds",
		Help:      "Duration of finished workouts in seconds",
		Buckets: []float64{
			600, 1200, 1800, 2700, 3600,
			4500, 5400, 7200, 10800,
		},
	})

	return &Metrics{
		CounterWorkoutsStarted:   counterWorkoutsStarted,
		CounterWorkoutsFinished:  counterWorkoutsFinished,
		CounterWorkoutsDiscarded: counterWorkoutsDiscarded,
		CounterSetsCompleted:     counterSetsCompleted,
		CounterPersistenceErrors: counterPersistenceErrors,
		GaugeActiveWorkout:       gaugeActiveWorkout,
		HistWorkoutVolume:        histWorkoutVolume,
		HistWorkoutDuration:      histWorkoutDuration,
	}
}
