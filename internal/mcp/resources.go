// ABOUTME: MCP resource implementations for the lift workout logger.
// ABOUTME: Provides lift://active, lift://recent and lift://catalog resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/strength"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentWorkoutsLimit = 10

func (s *Server) registerResources() {
	// lift://active - The workout in progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://active",
		Name:        "Active Workout",
		Description: "The workout in progress with its exercises, sets and running volume",
		MIMEType:    "application/json",
	}, s.handleActiveResource)

	// lift://recent - Last finished workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://recent",
		Name:        "Recent Workouts",
		Description: "Last 10 finished workouts",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// lift://catalog - Exercise templates
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://catalog",
		Name:        "Exercise Catalog",
		Description: "All exercise templates that can be added to a workout",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)
}

// Resource handlers

func (s *Server) handleActiveResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	w, ok := s.manager.Active()
	if !ok {
		return jsonResource("lift://active", map[string]interface{}{
			"active": false,
		})
	}

	completed := 0
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.IsCompleted {
				completed++
			}
		}
	}

	return jsonResource("lift://active", map[string]interface{}{
		"active":          true,
		"workout":         w,
		"elapsed_seconds": int(time.Since(w.StartedAt) / time.Second),
		"volume_kg":       strength.SessionVolume(w),
		"sets":            w.SetCount(),
		"completed_sets":  completed,
	})
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListFinishedSessions(ctx, recentWorkoutsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if workouts == nil {
		workouts = []*models.WorkoutSession{}
	}

	var totalVolume float64
	var totalSeconds int
	for _, w := range workouts {
		totalVolume += w.TotalVolumeKg
		totalSeconds += w.DurationSeconds
	}

	return jsonResource("lift://recent", map[string]interface{}{
		"workouts": workouts,
		"summary": map[string]interface{}{
			"count":            len(workouts),
			"total_volume_kg":  strength.Round2(totalVolume),
			"total_duration_s": totalSeconds,
		},
	})
}

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	templates, err := s.repo.ListTemplates(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	byMuscle := make(map[string][]*models.ExerciseTemplate)
	for _, t := range templates {
		byMuscle[string(t.MuscleGroup)] = append(byMuscle[string(t.MuscleGroup)], t)
	}

	return jsonResource("lift://catalog", byMuscle)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
