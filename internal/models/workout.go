// ABOUTME: Workout session, exercise and set models plus the in-memory ActiveWorkout aggregate.
// ABOUTME: Patch types describe partial updates applied both to storage and to memory.
package models

import "time"

// WorkoutSession is one logged training session. FinishedAt is nil while the
// session is in progress.
type WorkoutSession struct {
	ID              string     `json:"id" yaml:"id"`
	Name            string     `json:"name" yaml:"name"`
	StartedAt       time.Time  `json:"started_at" yaml:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	DurationSeconds int        `json:"duration_seconds" yaml:"duration_seconds"`
	TotalVolumeKg   float64    `json:"total_volume_kg" yaml:"total_volume_kg"`
	Notes           *string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IsFinished reports whether the session has been finished.
func (s *WorkoutSession) IsFinished() bool {
	return s.FinishedAt != nil
}

// WorkoutExercise is an exercise performed within a session.
type WorkoutExercise struct {
	ID                 string  `json:"id" yaml:"id"`
	SessionID          string  `json:"session_id" yaml:"session_id"`
	ExerciseTemplateID string  `json:"exercise_template_id" yaml:"exercise_template_id"`
	OrderIndex         int     `json:"order_index" yaml:"order_index"`
	Notes              *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// WorkoutSet is a single set of an exercise.
type WorkoutSet struct {
	ID              string     `json:"id" yaml:"id"`
	ExerciseID      string     `json:"exercise_id" yaml:"exercise_id"`
	SetNumber       int        `json:"set_number" yaml:"set_number"`
	WeightKg        *float64   `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	Reps            *int       `json:"reps,omitempty" yaml:"reps,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	RPE             *float64   `json:"rpe,omitempty" yaml:"rpe,omitempty"`
	IsWarmup        bool       `json:"is_warmup" yaml:"is_warmup"`
	IsCompleted     bool       `json:"is_completed" yaml:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// Clone returns a copy of the set that shares no pointers with the original.
func (s WorkoutSet) Clone() WorkoutSet {
	c := s
	c.WeightKg = cloneFloat(s.WeightKg)
	c.Reps = cloneInt(s.Reps)
	c.DurationSeconds = cloneInt(s.DurationSeconds)
	c.RPE = cloneFloat(s.RPE)
	c.CompletedAt = cloneTime(s.CompletedAt)
	return c
}

// ActiveExercise is an exercise of the active workout together with its ordered sets.
type ActiveExercise struct {
	WorkoutExercise `yaml:",inline"`
	Sets            []WorkoutSet `json:"sets" yaml:"sets"`
}

// ActiveWorkout is the in-memory working copy of the in-progress session.
type ActiveWorkout struct {
	SessionID string           `json:"session_id" yaml:"session_id"`
	Name      string           `json:"name" yaml:"name"`
	StartedAt time.Time        `json:"started_at" yaml:"started_at"`
	Notes     *string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Exercises []ActiveExercise `json:"exercises" yaml:"exercises"`
}

// Clone returns a deep copy of the aggregate.
func (a ActiveWorkout) Clone() ActiveWorkout {
	c := a
	c.Notes = cloneString(a.Notes)
	c.Exercises = make([]ActiveExercise, len(a.Exercises))
	for i, ex := range a.Exercises {
		cex := ex
		cex.Notes = cloneString(ex.Notes)
		cex.Sets = make([]WorkoutSet, len(ex.Sets))
		for j, s := range ex.Sets {
			cex.Sets[j] = s.Clone()
		}
		c.Exercises[i] = cex
	}
	return c
}

// SetCount returns the total number of sets across all exercises.
func (a ActiveWorkout) SetCount() int {
	n := 0
	for _, ex := range a.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// SetPatch is a partial update of a set. Nil fields are left unchanged.
type SetPatch struct {
	WeightKg        *float64
	Reps            *int
	DurationSeconds *int
	RPE             *float64
	IsWarmup        *bool

	// Completion and numbering are managed by the engine, not by callers.
	IsCompleted      *bool
	CompletedAt      *time.Time
	ClearCompletedAt bool
	SetNumber        *int
}

// IsEmpty reports whether the patch changes nothing.
func (p SetPatch) IsEmpty() bool {
	return p.WeightKg == nil && p.Reps == nil && p.DurationSeconds == nil &&
		p.RPE == nil && p.IsWarmup == nil && p.IsCompleted == nil &&
		p.CompletedAt == nil && !p.ClearCompletedAt && p.SetNumber == nil
}

// TouchesWorkingNumbers reports whether the patch modifies weight or reps.
func (p SetPatch) TouchesWorkingNumbers() bool {
	return p.WeightKg != nil || p.Reps != nil
}

// Apply applies the patch to s in place.
func (p SetPatch) Apply(s *WorkoutSet) {
	if p.WeightKg != nil {
		s.WeightKg = cloneFloat(p.WeightKg)
	}
	if p.Reps != nil {
		s.Reps = cloneInt(p.Reps)
	}
	if p.DurationSeconds != nil {
		s.DurationSeconds = cloneInt(p.DurationSeconds)
	}
	if p.RPE != nil {
		s.RPE = cloneFloat(p.RPE)
	}
	if p.IsWarmup != nil {
		s.IsWarmup = *p.IsWarmup
	}
	if p.IsCompleted != nil {
		s.IsCompleted = *p.IsCompleted
	}
	if p.CompletedAt != nil {
		s.CompletedAt = cloneTime(p.CompletedAt)
	}
	if p.ClearCompletedAt {
		s.CompletedAt = nil
	}
	if p.SetNumber != nil {
		s.SetNumber = *p.SetNumber
	}
}

// SessionPatch is a partial update of a session. Nil fields are left unchanged.
type SessionPatch struct {
	Name            *string
	FinishedAt      *time.Time
	DurationSeconds *int
	TotalVolumeKg   *float64
	Notes           *string
}

// Apply applies the patch to s in place.
func (p SessionPatch) Apply(s *WorkoutSession) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.FinishedAt != nil {
		s.FinishedAt = cloneTime(p.FinishedAt)
	}
	if p.DurationSeconds != nil {
		s.DurationSeconds = *p.DurationSeconds
	}
	if p.TotalVolumeKg != nil {
		s.TotalVolumeKg = *p.TotalVolumeKg
	}
	if p.Notes != nil {
		s.Notes = cloneString(p.Notes)
	}
}

// SessionHistory is what the history reader returns for one finished session:
// the completed sets of a single exercise template.
type SessionHistory struct {
	SessionID string       `json:"session_id"`
	Date      time.Time    `json:"date"`
	Name      string       `json:"name"`
	Sets      []WorkoutSet `json:"sets"`
}

// ExerciseDetail is a stored exercise with its sets.
type ExerciseDetail struct {
	WorkoutExercise `yaml:",inline"`
	Sets            []WorkoutSet `json:"sets" yaml:"sets"`
}

// SessionDetail is a stored session with its exercises in order.
type SessionDetail struct {
	WorkoutSession `yaml:",inline"`
	Exercises      []ExerciseDetail `json:"exercises" yaml:"exercises"`
}

// ToActive converts a stored session into the in-memory aggregate.
func (d SessionDetail) ToActive() ActiveWorkout {
	a := ActiveWorkout{
		SessionID: d.ID,
		Name:      d.Name,
		StartedAt: d.StartedAt,
		Notes:     cloneString(d.Notes),
		Exercises: make([]ActiveExercise, 0, len(d.Exercises)),
	}
	for _, ex := range d.Exercises {
		sets := make([]WorkoutSet, len(ex.Sets))
		for i, s := range ex.Sets {
			sets[i] = s.Clone()
		}
		a.Exercises = append(a.Exercises, ActiveExercise{WorkoutExercise: ex.WorkoutExercise, Sets: sets})
	}
	return a
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
