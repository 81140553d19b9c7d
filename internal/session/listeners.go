// ABOUTME: Listener ports notified by the workout engine.
// ABOUTME: Set completion runs inline; finish listeners run in goroutines.
package session

import "time"

// SetCompletionListener is told about every set that becomes completed, e.g.
// to start a rest timer. It is called synchronously after the change is stored.
type SetCompletionListener interface {
	OnSetCompleted(exerciseID, setID string)
}

// SetCompletionFunc adapts a function to SetCompletionListener.
type SetCompletionFunc func(exerciseID, setID string)

func (f SetCompletionFunc) OnSetCompleted(exerciseID, setID string) {
	f(exerciseID, setID)
}

// FinishSummary describes a workout that was just finished.
type FinishSummary struct {
	SessionID       string
	Name            string
	StartedAt       time.Time
	FinishedAt      time.Time
	DurationSeconds int
	TotalVolumeKg   float64
	ExerciseCount   int
	CompletedSets   int
}

// FinishListener is notified in its own goroutine after a workout is finished.
// The manager does not wait for it except in Close.
type FinishListener interface {
	OnWorkoutFinished(summary FinishSummary)
}

// FinishFunc adapts a function to FinishListener.
type FinishFunc func(summary FinishSummary)

func (f FinishFunc) OnWorkoutFinished(summary FinishSummary) {
	f(summary)
}
