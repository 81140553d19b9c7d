// ABOUTME: Output and parsing helpers shared by lift commands.
// ABOUTME: Formats sets, weights and durations and parses user supplied dates.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
	"github.com/harperreed/lift/internal/strength"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// formatDuration renders seconds as 1h05m or 45m or 30s.
func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func formatKg(v float64) string {
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", v), "0"), ".0") + " kg"
}

// formatSet renders one set line without its ID, e.g. "2  100 kg x 5  @8  ✓".
func formatSet(s models.WorkoutSet) string {
	var parts []string

	label := fmt.Sprintf("%d", s.SetNumber)
	if s.IsWarmup {
		label = "W"
	}
	parts = append(parts, padRight(label, 2))

	var load string
	switch {
	case s.WeightKg != nil && s.Reps != nil:
		load = fmt.Sprintf("%s x %d", formatKg(*s.WeightKg), *s.Reps)
	case s.WeightKg != nil:
		load = formatKg(*s.WeightKg)
	case s.Reps != nil:
		load = fmt.Sprintf("%d reps", *s.Reps)
	case s.DurationSeconds != nil:
		load = formatDuration(*s.DurationSeconds)
	default:
		load = "-"
	}
	parts = append(parts, padRight(load, 16))

	if s.RPE != nil {
		parts = append(parts, fmt.Sprintf("@%g", *s.RPE))
	}
	if s.IsCompleted {
		parts = append(parts, color.GreenString("✓"))
	}
	return strings.Join(parts, " ")
}

// templateName looks up a catalog name, falling back to the ID.
func templateName(ctx context.Context, catalog storage.Catalog, id string) string {
	t, err := catalog.GetTemplate(ctx, id)
	if err != nil {
		return id
	}
	return t.Name
}

func printExercise(name, exerciseID string, sets []models.WorkoutSet) {
	faint := color.New(color.Faint)
	volume := strength.Volume(sets, true)
	fmt.Printf("\n%s %s %s\n", faint.Sprint(shortID(exerciseID)), color.New(color.Bold).Sprint(name),
		faint.Sprintf("(%s)", formatKg(volume)))
	if len(sets) == 0 {
		fmt.Println(faint.Sprint("  no sets"))
		return
	}
	for _, s := range sets {
		fmt.Printf("  %s %s\n", faint.Sprint(shortID(s.ID)), formatSet(s))
	}
}
