// ABOUTME: Numeric helpers for strength training: Epley one-rep max and volume.
// ABOUTME: Pure functions shared by the session engine and the progression analyzer.
package strength

import (
	"math"

	"github.com/harperreed/lift/internal/models"
)

// MaxEpleyReps is the highest rep count the Epley estimate is trusted for.
const MaxEpleyReps = 15

// Epley1RM estimates the one-rep max for weightKg lifted reps times, rounded
// to one decimal. ok is false when no estimate can be made.
func Epley1RM(weightKg float64, reps int) (estimate float64, ok bool) {
	if weightKg <= 0 || reps <= 0 || reps > MaxEpleyReps {
		return 0, false
	}
	if reps == 1 {
		return weightKg, true
	}
	return Round1(weightKg * (1 + float64(reps)/30)), true
}

// SetEpley1RM is Epley1RM for a stored set; sets missing weight or reps have no estimate.
func SetEpley1RM(s models.WorkoutSet) (float64, bool) {
	if s.WeightKg == nil || s.Reps == nil {
		return 0, false
	}
	return Epley1RM(*s.WeightKg, *s.Reps)
}

// SetVolume returns weight × reps, ok is false if either is missing.
func SetVolume(weightKg *float64, reps *int) (float64, bool) {
	if weightKg == nil || reps == nil {
		return 0, false
	}
	return *weightKg * float64(*reps), true
}

// Volume sums weight × reps over completed sets with both values present.
// Warmup sets count only when includeWarmups is set: a finished session's
// volume includes them, per-exercise history does not.
func Volume(sets []models.WorkoutSet, includeWarmups bool) float64 {
	var total float64
	for _, s := range sets {
		if !s.IsCompleted {
			continue
		}
		if s.IsWarmup && !includeWarmups {
			continue
		}
		if v, ok := SetVolume(s.WeightKg, s.Reps); ok {
			total += v
		}
	}
	return total
}

// SessionVolume is the finished-session volume of a workout: every completed
// set of every exercise, warmups included.
func SessionVolume(w models.ActiveWorkout) float64 {
	var total float64
	for _, ex := range w.Exercises {
		total += Volume(ex.Sets, true)
	}
	return Round2(total)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
