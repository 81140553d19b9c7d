// ABOUTME: Rep records across an exercise history.
// ABOUTME: Heaviest weight per rep target, best estimated 1RM for single reps.
package progress

import (
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/strength"
)

// RecordTargets are the rep counts personal records are tracked for.
var RecordTargets = []int{1, 3, 5, 10, 20}

// repTolerance is how far a set's reps may be from a target and still count.
const repTolerance = 1

// RepRecord is the best result for a rep target. For one rep it is the best
// estimated 1RM; for other targets the heaviest weight lifted for the target
// reps, give or take one. WeightKg is nil when nothing qualifies.
type RepRecord struct {
	Reps      int        `json:"reps"`
	WeightKg  *float64   `json:"weight_kg,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Estimated bool       `json:"estimated"`
}

// RepRecords scans completed working sets with a weight for every target in
// RecordTargets. A tie goes to the earlier session.
func RepRecords(history []models.SessionHistory) []RepRecord {
	records := make([]RepRecord, len(RecordTargets))
	for i, target := range RecordTargets {
		records[i] = RepRecord{Reps: target, Estimated: target == 1}
	}

	for _, session := range history {
		for _, set := range session.Sets {
			if !countsForRecords(set) {
				continue
			}
			for i, target := range RecordTargets {
				value, ok := recordValue(set, target)
				if !ok {
					continue
				}
				records[i].offer(value, session)
			}
		}
	}
	return records
}

func (r *RepRecord) offer(value float64, session models.SessionHistory) {
	if r.WeightKg != nil {
		if value < *r.WeightKg {
			return
		}
		if value == *r.WeightKg && !session.Date.Before(*r.Date) {
			return
		}
	}
	date := session.Date
	r.WeightKg = &value
	r.Date = &date
	r.SessionID = session.SessionID
}

func countsForRecords(s models.WorkoutSet) bool {
	return s.IsCompleted && !s.IsWarmup && s.WeightKg != nil && *s.WeightKg > 0 && s.Reps != nil
}

func recordValue(s models.WorkoutSet, target int) (float64, bool) {
	if target == 1 {
		return strength.SetEpley1RM(s)
	}
	diff := *s.Reps - target
	if diff < -repTolerance || diff > repTolerance {
		return 0, false
	}
	return *s.WeightKg, true
}
