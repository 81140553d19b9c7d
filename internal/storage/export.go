// ABOUTME: Export and import of workout data across storage backends.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for workout data.
type ExportData struct {
	Version    string                     `json:"version" yaml:"version"`
	ExportedAt time.Time                  `json:"exported_at" yaml:"exported_at"`
	Tool       string                     `json:"tool" yaml:"tool"`
	Templates  []*models.ExerciseTemplate `json:"templates" yaml:"templates"`
	Sessions   []*models.SessionDetail    `json:"sessions" yaml:"sessions"`
}

// Export collects custom templates and every session, finished ones first in
// reverse chronological order followed by the unfinished session if any.
func Export(ctx context.Context, r Repository) (*ExportData, error) {
	templates, err := r.ListTemplates(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "lift",
	}
	for _, t := range templates {
		if t.IsCustom {
			data.Templates = append(data.Templates, t)
		}
	}

	sessions, err := r.ListFinishedSessions(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for _, s := range sessions {
		detail, err := r.GetSessionDetail(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("get session %s: %w", s.ID, err)
		}
		data.Sessions = append(data.Sessions, detail)
	}

	active, err := r.FindUnfinishedSession(ctx)
	switch {
	case err == nil:
		data.Sessions = append(data.Sessions, active)
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("find unfinished session: %w", err)
	}

	return data, nil
}

// Import writes exported data into r. Templates already present are skipped;
// each session is written in its own transaction. Nothing is written when the
// data holds an unfinished session and r already has one.
func Import(ctx context.Context, r Repository, data *ExportData) (*MigrateSummary, error) {
	if err := checkUnfinished(ctx, r, data); err != nil {
		return nil, err
	}

	summary := &MigrateSummary{}

	for _, t := range data.Templates {
		_, err := r.GetTemplate(ctx, t.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("check template %s: %w", t.ID, err)
		}
		if err := r.CreateTemplate(ctx, t); err != nil {
			return nil, fmt.Errorf("import template %s: %w", t.ID, err)
		}
		summary.Templates++
	}

	for _, detail := range data.Sessions {
		err := r.WithinTx(ctx, func(tx SessionStore) error {
			session := detail.WorkoutSession
			if err := tx.CreateSession(ctx, &session); err != nil {
				return err
			}
			for _, ex := range detail.Exercises {
				exercise := ex.WorkoutExercise
				exercise.SessionID = session.ID
				if err := tx.CreateExercise(ctx, &exercise); err != nil {
					return err
				}
				for _, s := range ex.Sets {
					set := s.Clone()
					set.ExerciseID = exercise.ID
					if err := tx.CreateSet(ctx, &set); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("import session %s: %w", detail.ID, err)
		}
		summary.Sessions++
		for _, ex := range detail.Exercises {
			summary.Exercises++
			summary.Sets += len(ex.Sets)
		}
	}

	return summary, nil
}

func checkUnfinished(ctx context.Context, r Repository, data *ExportData) error {
	var incoming *models.SessionDetail
	for _, s := range data.Sessions {
		if s.IsFinished() {
			continue
		}
		if incoming != nil {
			return fmt.Errorf("sessions %s and %s are both unfinished: %w", incoming.ID, s.ID, ErrUnfinishedConflict)
		}
		incoming = s
	}
	if incoming == nil {
		return nil
	}

	existing, err := r.FindUnfinishedSession(ctx)
	switch {
	case err == nil:
		return fmt.Errorf("cannot import unfinished session %s while %s is active: %w", incoming.ID, existing.ID, ErrUnfinishedConflict)
	case !errors.Is(err, ErrNotFound):
		return fmt.Errorf("find unfinished session: %w", err)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(ctx context.Context, r Repository) ([]byte, error) {
	data, err := Export(ctx, r)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, r Repository, b []byte) (*MigrateSummary, error) {
	var data ExportData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return Import(ctx, r, &data)
}

// ExportYAML exports finished sessions as human-readable YAML with exercise
// names in place of template IDs.
func ExportYAML(ctx context.Context, r Repository) ([]byte, error) {
	data, err := Export(ctx, r)
	if err != nil {
		return nil, err
	}
	names, err := templateNames(ctx, r)
	if err != nil {
		return nil, err
	}

	out := struct {
		Version    string        `yaml:"version"`
		ExportedAt string        `yaml:"exported_at"`
		Tool       string        `yaml:"tool"`
		Workouts   []yamlSession `yaml:"workouts"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Workouts:   make([]yamlSession, 0, len(data.Sessions)),
	}

	for _, s := range data.Sessions {
		ys := yamlSession{
			ID:              shortID(s.ID),
			Name:            s.Name,
			StartedAt:       s.StartedAt.Format(time.RFC3339),
			DurationSeconds: s.DurationSeconds,
			TotalVolumeKg:   s.TotalVolumeKg,
		}
		if s.FinishedAt == nil {
			ys.InProgress = true
		}
		if s.Notes != nil {
			ys.Notes = *s.Notes
		}
		for _, ex := range s.Exercises {
			ye := yamlExercise{Name: names[ex.ExerciseTemplateID]}
			if ye.Name == "" {
				ye.Name = ex.ExerciseTemplateID
			}
			for _, set := range ex.Sets {
				yset := yamlSet{Number: set.SetNumber, Warmup: set.IsWarmup, Done: set.IsCompleted}
				if set.WeightKg != nil {
					yset.WeightKg = *set.WeightKg
				}
				if set.Reps != nil {
					yset.Reps = *set.Reps
				}
				if set.RPE != nil {
					yset.RPE = *set.RPE
				}
				ye.Sets = append(ye.Sets, yset)
			}
			ys.Exercises = append(ys.Exercises, ye)
		}
		out.Workouts = append(out.Workouts, ys)
	}

	return yaml.Marshal(out)
}

type yamlSession struct {
	ID              string         `yaml:"id"`
	Name            string         `yaml:"name"`
	StartedAt       string         `yaml:"started_at"`
	InProgress      bool           `yaml:"in_progress,omitempty"`
	DurationSeconds int            `yaml:"duration_seconds"`
	TotalVolumeKg   float64        `yaml:"total_volume_kg"`
	Notes           string         `yaml:"notes,omitempty"`
	Exercises       []yamlExercise `yaml:"exercises,omitempty"`
}

type yamlExercise struct {
	Name string    `yaml:"name"`
	Sets []yamlSet `yaml:"sets,omitempty"`
}

type yamlSet struct {
	Number   int     `yaml:"set"`
	WeightKg float64 `yaml:"weight_kg,omitempty"`
	Reps     int     `yaml:"reps,omitempty"`
	RPE      float64 `yaml:"rpe,omitempty"`
	Warmup   bool    `yaml:"warmup,omitempty"`
	Done     bool    `yaml:"done"`
}

// ExportMarkdown renders finished sessions started at or after since as a Markdown log.
func ExportMarkdown(ctx context.Context, r Repository, since *time.Time) (string, error) {
	sessions, err := r.ListFinishedSessions(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("list sessions: %w", err)
	}
	names, err := templateNames(ctx, r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()
	fmt.Fprintf(&sb, "# Workout Log - %s\n\n", now.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format(time.RFC3339))

	for _, s := range sessions {
		if since != nil && s.StartedAt.Before(*since) {
			continue
		}
		detail, err := r.GetSessionDetail(ctx, s.ID)
		if err != nil {
			return "", fmt.Errorf("get session %s: %w", s.ID, err)
		}

		fmt.Fprintf(&sb, "## %s - %s\n\n", s.StartedAt.Local().Format("2006-01-02 15:04"), s.Name)
		fmt.Fprintf(&sb, "Duration: %d min | Volume: %.1f kg\n\n", s.DurationSeconds/60, s.TotalVolumeKg)
		if s.Notes != nil && *s.Notes != "" {
			fmt.Fprintf(&sb, "> %s\n\n", *s.Notes)
		}
		for _, ex := range detail.Exercises {
			fmt.Fprintf(&sb, "### %s\n\n", names[ex.ExerciseTemplateID])
			sb.WriteString("| Set | Weight | Reps | RPE |\n")
			sb.WriteString("|-----|--------|------|-----|\n")
			for _, set := range ex.Sets {
				if !set.IsCompleted {
					continue
				}
				label := fmt.Sprintf("%d", set.SetNumber)
				if set.IsWarmup {
					label = "W"
				}
				fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
					label, fmtFloat(set.WeightKg, " kg"), fmtInt(set.Reps), fmtFloat(set.RPE, ""))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

func templateNames(ctx context.Context, r Catalog) (map[string]string, error) {
	templates, err := r.ListTemplates(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	names := make(map[string]string, len(templates))
	for _, t := range templates {
		names[t.ID] = t.Name
	}
	return names, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fmtFloat(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g%s", *v, unit)
}

func fmtInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
