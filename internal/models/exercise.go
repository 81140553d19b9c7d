// ABOUTME: ExerciseTemplate catalog model and MuscleGroup enum.
// ABOUTME: Templates are read-only reference data for the workout engine.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MuscleGroup is the primary muscle group an exercise trains.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleLegs      MuscleGroup = "legs"
	MuscleGlutes    MuscleGroup = "glutes"
	MuscleCore      MuscleGroup = "core"
	MuscleFullBody  MuscleGroup = "full_body"
)

// AllMuscleGroups lists every valid muscle group.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps,
	MuscleLegs, MuscleGlutes, MuscleCore, MuscleFullBody,
}

// IsValidMuscleGroup checks if a string is a valid muscle group.
func IsValidMuscleGroup(s string) bool {
	for _, mg := range AllMuscleGroups {
		if string(mg) == s {
			return true
		}
	}
	return false
}

// Equipment values used by the built-in catalog. Custom templates may use any string.
const (
	EquipmentBarbell    = "barbell"
	EquipmentDumbbell   = "dumbbell"
	EquipmentMachine    = "machine"
	EquipmentCable      = "cable"
	EquipmentBodyweight = "bodyweight"
)

// ExerciseTemplate is a catalog entry an exercise in a workout refers to.
type ExerciseTemplate struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	MuscleGroup MuscleGroup `json:"muscle_group" yaml:"muscle_group"`
	Equipment   string      `json:"equipment" yaml:"equipment"`
	IsCustom    bool        `json:"is_custom" yaml:"is_custom"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
}

// NewExerciseTemplate creates a custom template with a generated ID.
func NewExerciseTemplate(name string, muscleGroup MuscleGroup, equipment string) *ExerciseTemplate {
	return &ExerciseTemplate{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		MuscleGroup: muscleGroup,
		Equipment:   equipment,
		IsCustom:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

// DefaultCatalog is the built-in exercise catalog seeded into new databases.
// IDs are stable slugs so history survives re-seeding.
var DefaultCatalog = []ExerciseTemplate{
	{ID: "bench_press", Name: "Bench Press", MuscleGroup: MuscleChest, Equipment: EquipmentBarbell},
	{ID: "incline_bench_press", Name: "Incline Bench Press", MuscleGroup: MuscleChest, Equipment: EquipmentBarbell},
	{ID: "dumbbell_fly", Name: "Dumbbell Fly", MuscleGroup: MuscleChest, Equipment: EquipmentDumbbell},
	{ID: "squat", Name: "Back Squat", MuscleGroup: MuscleLegs, Equipment: EquipmentBarbell},
	{ID: "leg_press", Name: "Leg Press", MuscleGroup: MuscleLegs, Equipment: EquipmentMachine},
	{ID: "romanian_deadlift", Name: "Romanian Deadlift", MuscleGroup: MuscleGlutes, Equipment: EquipmentBarbell},
	{ID: "deadlift", Name: "Deadlift", MuscleGroup: MuscleBack, Equipment: EquipmentBarbell},
	{ID: "barbell_row", Name: "Barbell Row", MuscleGroup: MuscleBack, Equipment: EquipmentBarbell},
	{ID: "pull_up", Name: "Pull-up", MuscleGroup: MuscleBack, Equipment: EquipmentBodyweight},
	{ID: "lat_pulldown", Name: "Lat Pulldown", MuscleGroup: MuscleBack, Equipment: EquipmentCable},
	{ID: "overhead_press", Name: "Overhead Press", MuscleGroup: MuscleShoulders, Equipment: EquipmentBarbell},
	{ID: "lateral_raise", Name: "Lateral Raise", MuscleGroup: MuscleShoulders, Equipment: EquipmentDumbbell},
	{ID: "barbell_curl", Name: "Barbell Curl", MuscleGroup: MuscleBiceps, Equipment: EquipmentBarbell},
	{ID: "triceps_pushdown", Name: "Triceps Pushdown", MuscleGroup: MuscleTriceps, Equipment: EquipmentCable},
	{ID: "plank", Name: "Plank", MuscleGroup: MuscleCore, Equipment: EquipmentBodyweight},
}
