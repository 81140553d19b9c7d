// ABOUTME: MCP tool implementations for the lift workout logger.
// ABOUTME: Drives the active workout engine and reads catalog, history and progress.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/lift/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// start_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a new workout session. Only one workout can be active at a time.",
	}, s.handleStartWorkout)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise from the catalog to the active workout",
	}, s.handleAddExercise)

	// add_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Add a set to an exercise of the active workout. Weight and reps are copied from the previous set.",
	}, s.handleAddSet)

	// update_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Change weight, reps, duration, RPE or warmup flag of a set. Weight and reps of a completed set are frozen until it is uncompleted.",
	}, s.handleUpdateSet)

	// complete_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_set",
		Description: "Mark a set as done",
	}, s.handleCompleteSet)

	// uncomplete_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "uncomplete_set",
		Description: "Mark a completed set as not done",
	}, s.handleUncompleteSet)

	// remove_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_set",
		Description: "Remove a set; the remaining sets are renumbered",
	}, s.handleRemoveSet)

	// remove_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_exercise",
		Description: "Remove an exercise and all its sets from the active workout",
	}, s.handleRemoveExercise)

	// rename_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_workout",
		Description: "Rename the active workout",
	}, s.handleRenameWorkout)

	// set_workout_notes
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_workout_notes",
		Description: "Replace the notes of the active workout",
	}, s.handleSetNotes)

	// finish_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish the active workout and store its duration and total volume",
	}, s.handleFinishWorkout)

	// discard_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "discard_workout",
		Description: "Delete the active workout without saving it",
	}, s.handleDiscardWorkout)

	// get_active_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_active_workout",
		Description: "Get the active workout with its exercises and sets",
	}, s.handleGetActiveWorkout)

	// list_catalog
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_catalog",
		Description: "List exercise templates, optionally filtered by muscle group",
	}, s.handleListCatalog)

	// exercise_progress
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_progress",
		Description: "Analyse recent finished sessions of an exercise: per-session stats, trend, rep records and advice",
	}, s.handleExerciseProgress)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List finished workouts, most recent first",
	}, s.handleListWorkouts)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a stored workout with its exercises and sets",
	}, s.handleGetWorkout)
}

// Tool input/output types

type startWorkoutInput struct {
	Name string `json:"name,omitempty" jsonschema:"Workout name, defaults to Workout"`
}

type addExerciseInput struct {
	TemplateID string `json:"template_id" jsonschema:"Exercise template ID from list_catalog (e.g. bench_press)"`
}

type exerciseRefInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID, ID prefix or template ID within the active workout"`
}

type setRefInput struct {
	SetID string `json:"set_id" jsonschema:"Set ID or ID prefix within the active workout"`
}

type updateSetInput struct {
	SetID           string   `json:"set_id" jsonschema:"Set ID or ID prefix within the active workout"`
	WeightKg        *float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms"`
	Reps            *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
	DurationSeconds *int     `json:"duration_seconds,omitempty" jsonschema:"Duration in seconds for timed sets"`
	RPE             *float64 `json:"rpe,omitempty" jsonschema:"Rate of perceived exertion, 1 to 10"`
	IsWarmup        *bool    `json:"is_warmup,omitempty" jsonschema:"Whether this is a warmup set"`
}

type renameInput struct {
	Name string `json:"name" jsonschema:"New workout name"`
}

type notesInput struct {
	Notes string `json:"notes" jsonschema:"Workout notes"`
}

type listCatalogInput struct {
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (chest, back, shoulders, biceps, triceps, legs, glutes, core, full_body)"`
}

type progressInput struct {
	TemplateID string `json:"template_id" jsonschema:"Exercise template ID (e.g. squat)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Number of recent sessions to analyse"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type getWorkoutInput struct {
	ID string `json:"id" jsonschema:"Workout ID or prefix"`
}

type idOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.manager.Start(ctx, input.Name)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to start workout: %w", err)
	}

	w, _ := s.manager.Active()
	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Started %s (ID: %s)", w.Name, shortID(id)),
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, idOutput, error) {
	tpl, err := s.repo.GetTemplate(ctx, input.TemplateID)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("exercise template not found: %s", input.TemplateID)
	}

	id, err := s.manager.AddExercise(ctx, *tpl)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Added %s (ID: %s)", tpl.Name, shortID(id)),
	}, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input exerciseRefInput) (*mcp.CallToolResult, idOutput, error) {
	exID, err := s.manager.ResolveExercise(input.ExerciseID)
	if err != nil {
		return nil, idOutput{}, err
	}

	id, err := s.manager.AddSet(ctx, exID)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add set: %w", err)
	}

	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Added set (ID: %s)", shortID(id)),
	}, nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	exID, setID, err := s.manager.ResolveSet(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	patch := models.SetPatch{
		WeightKg:        input.WeightKg,
		Reps:            input.Reps,
		DurationSeconds: input.DurationSeconds,
		RPE:             input.RPE,
		IsWarmup:        input.IsWarmup,
	}
	if err := s.manager.UpdateSet(ctx, exID, setID, patch); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update set: %w", err)
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Updated set %s", shortID(setID))}, nil
}

func (s *Server) handleCompleteSet(ctx context.Context, req *mcp.CallToolRequest, input setRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	exID, setID, err := s.manager.ResolveSet(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.manager.CompleteSet(ctx, exID, setID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to complete set: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Completed set %s", shortID(setID))}, nil
}

func (s *Server) handleUncompleteSet(ctx context.Context, req *mcp.CallToolRequest, input setRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	exID, setID, err := s.manager.ResolveSet(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.manager.UncompleteSet(ctx, exID, setID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to uncomplete set: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Uncompleted set %s", shortID(setID))}, nil
}

func (s *Server) handleRemoveSet(ctx context.Context, req *mcp.CallToolRequest, input setRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	exID, setID, err := s.manager.ResolveSet(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.manager.RemoveSet(ctx, exID, setID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to remove set: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed set %s", shortID(setID))}, nil
}

func (s *Server) handleRemoveExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	exID, err := s.manager.ResolveExercise(input.ExerciseID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.manager.RemoveExercise(ctx, exID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to remove exercise: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed exercise %s", shortID(exID))}, nil
}

func (s *Server) handleRenameWorkout(ctx context.Context, req *mcp.CallToolRequest, input renameInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.manager.RenameWorkout(ctx, input.Name); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to rename workout: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Renamed workout to %s", input.Name)}, nil
}

func (s *Server) handleSetNotes(ctx context.Context, req *mcp.CallToolRequest, input notesInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.manager.SetNotes(ctx, input.Notes); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to set notes: %w", err)
	}
	return nil, simpleOutput{Message: "Updated workout notes"}, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	id, finished, err := s.manager.Finish(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to finish workout: %w", err)
	}
	if !finished {
		return nil, simpleOutput{Message: "No active workout."}, nil
	}

	detail, err := s.repo.GetSessionDetail(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load finished workout: %w", err)
	}
	return nil, detail, nil
}

func (s *Server) handleDiscardWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.manager.Discard(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to discard workout: %w", err)
	}
	return nil, simpleOutput{Message: "Discarded the active workout"}, nil
}

func (s *Server) handleGetActiveWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	w, ok := s.manager.Active()
	if !ok {
		return nil, simpleOutput{Message: "No active workout."}, nil
	}
	return nil, w, nil
}

func (s *Server) handleListCatalog(ctx context.Context, req *mcp.CallToolRequest, input listCatalogInput) (*mcp.CallToolResult, any, error) {
	var muscle *models.MuscleGroup
	if input.MuscleGroup != "" {
		if !models.IsValidMuscleGroup(input.MuscleGroup) {
			return nil, nil, fmt.Errorf("unknown muscle group: %s", input.MuscleGroup)
		}
		mg := models.MuscleGroup(input.MuscleGroup)
		muscle = &mg
	}

	templates, err := s.repo.ListTemplates(ctx, muscle)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return nil, templates, nil
}

func (s *Server) handleExerciseProgress(ctx context.Context, req *mcp.CallToolRequest, input progressInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.repo.GetTemplate(ctx, input.TemplateID); err != nil {
		return nil, nil, fmt.Errorf("exercise template not found: %s", input.TemplateID)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.historyLimit
	}
	report, err := s.analyzer.Analyze(ctx, input.TemplateID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to analyse progress: %w", err)
	}
	return nil, report, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts, err := s.repo.ListFinishedSessions(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}

	return nil, workouts, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.GetSessionDetail(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}

	return nil, w, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
