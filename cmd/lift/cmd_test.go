// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Drives whole workouts through the commands against a temp data directory.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
	"github.com/spf13/cobra"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "date and time with space", input: "2025-01-31 08:30"},
		{name: "date and time with T", input: "2025-01-31T08:30"},
		{name: "date only", input: "2025-01-31"},
		{name: "RFC3339", input: "2025-01-31T08:30:00Z"},
		{name: "invalid format", input: "31-01-2025", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTime(%q) unexpected error: %v", tt.input, err)
			}
			if result.Year() != 2025 || result.Month() != time.January || result.Day() != 31 {
				t.Errorf("parseTime(%q) returned wrong date: %v", tt.input, result)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is a long string", 10, "hello w..."},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("padRight = %q, want unchanged", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{2700, "45m"},
		{3900, "1h05m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatKg(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100 kg"},
		{82.5, "82.5 kg"},
		{1.25, "1.25 kg"},
		{0, "0 kg"},
		{1600, "1600 kg"},
	}
	for _, tt := range tests {
		if got := formatKg(tt.in); got != tt.want {
			t.Errorf("formatKg(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSet(t *testing.T) {
	warm := models.WorkoutSet{SetNumber: 1, WeightKg: models.Float(60), Reps: models.Int(10), IsWarmup: true}
	if got := formatSet(warm); !strings.HasPrefix(got, "W ") || !strings.Contains(got, "60 kg x 10") {
		t.Errorf("formatSet(warmup) = %q", got)
	}

	timed := models.WorkoutSet{SetNumber: 2, DurationSeconds: models.Int(90)}
	if got := formatSet(timed); !strings.Contains(got, "1m") {
		t.Errorf("formatSet(timed) = %q", got)
	}

	empty := models.WorkoutSet{SetNumber: 3, RPE: models.Float(8.5)}
	if got := formatSet(empty); !strings.Contains(got, "-") || !strings.Contains(got, "@8.5") {
		t.Errorf("formatSet(empty) = %q", got)
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "lift" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "lift")
	}
	if rootCmd.PersistentFlags().Lookup("log-level") == nil {
		t.Error("Expected --log-level persistent flag")
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		want   []string
	}{
		{exerciseCmd, []string{"add", "rm"}},
		{setCmd, []string{"add", "update", "done", "undo", "rm"}},
		{catalogCmd, []string{"list", "add"}},
		{configCmd, []string{"show", "set", "path"}},
	}

	for _, tt := range tests {
		names := make(map[string]bool)
		for _, c := range tt.parent.Commands() {
			names[c.Name()] = true
		}
		for _, want := range tt.want {
			if !names[want] {
				t.Errorf("Expected %s to have subcommand %q", tt.parent.Name(), want)
			}
		}
	}
}

func TestSkipsStorage(t *testing.T) {
	if !skipsStorage(configShowCmd) {
		t.Error("config show should not open storage")
	}
	if skipsStorage(statusCmd) {
		t.Error("status needs storage")
	}
}

// setupTestCLI points XDG_DATA_HOME and XDG_CONFIG_HOME at a temp directory
// and opens the database the CLI will use.
func setupTestCLI(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))

	// Pre-open the database to create the schema
	testDB, err := storage.Open(filepath.Join(tmpDir, "data", "lift", "lift.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := closeRuntime(); err != nil {
			t.Errorf("closeRuntime: %v", err)
		}
		testDB.Close()
	})

	return testDB
}

// run executes the CLI with flags reset to their defaults.
func run(t *testing.T, args ...string) error {
	t.Helper()

	resetFlags(setUpdateCmd, "weight", "reps", "duration", "rpe", "warmup")
	resetFlags(exportCmd, "output", "since")
	resetFlags(migrateCmd, "to", "dry-run", "switch")
	resetFlags(historyCmd, "limit")
	resetFlags(progressCmd, "limit")
	resetFlags(catalogListCmd, "muscle")
	resetFlags(catalogAddCmd, "muscle", "equipment")
	resetFlags(mcpCmd, "http")

	rootCmd.SetArgs(args)
	return Execute()
}

func resetFlags(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := run(t, args...); err != nil {
		t.Fatalf("lift %s failed: %v", strings.Join(args, " "), err)
	}
}

// unfinished reads the in-progress workout straight from the database.
func unfinished(t *testing.T, db *storage.DB) *models.SessionDetail {
	t.Helper()
	w, err := db.FindUnfinishedSession(context.Background())
	if err != nil {
		t.Fatalf("FindUnfinishedSession failed: %v", err)
	}
	return w
}

func TestWorkoutFlow(t *testing.T) {
	testDB := setupTestCLI(t)

	mustRun(t, "start", "Push Day")
	mustRun(t, "exercise", "add", "bench_press")
	mustRun(t, "set", "add", "bench_press")

	w := unfinished(t, testDB)
	if w.Name != "Push Day" {
		t.Errorf("Expected name Push Day, got %q", w.Name)
	}
	if len(w.Exercises) != 1 || len(w.Exercises[0].Sets) != 1 {
		t.Fatalf("Expected 1 exercise with 1 set, got %+v", w.Exercises)
	}
	first := w.Exercises[0].Sets[0].ID

	mustRun(t, "set", "update", first[:8], "--weight", "100", "--reps", "8")
	mustRun(t, "set", "done", first[:8])
	mustRun(t, "set", "add", w.Exercises[0].ID[:8])

	w = unfinished(t, testDB)
	second := w.Exercises[0].Sets[1]
	if second.WeightKg == nil || *second.WeightKg != 100 || second.Reps == nil || *second.Reps != 8 {
		t.Errorf("Expected second set to copy 100 x 8, got %+v", second)
	}
	if second.SetNumber != 2 {
		t.Errorf("Expected set number 2, got %d", second.SetNumber)
	}

	mustRun(t, "set", "done", second.ID)
	mustRun(t, "status")
	mustRun(t, "notes", "felt strong")
	mustRun(t, "finish")

	sessions, err := testDB.ListFinishedSessions(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListFinishedSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 finished workout, got %d", len(sessions))
	}
	if sessions[0].TotalVolumeKg != 1600 {
		t.Errorf("Expected volume 1600, got %v", sessions[0].TotalVolumeKg)
	}
	if sessions[0].Notes == nil || *sessions[0].Notes != "felt strong" {
		t.Errorf("Expected notes to be stored, got %v", sessions[0].Notes)
	}

	mustRun(t, "history")
	mustRun(t, "show", sessions[0].ID[:8])
	mustRun(t, "progress", "bench_press")
}

func TestStartWhileActive(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "start")
	err := run(t, "start", "Again")
	if err == nil || !strings.Contains(err.Error(), "already active") {
		t.Errorf("Expected already active error, got %v", err)
	}
}

func TestCommandsWithoutActiveWorkout(t *testing.T) {
	setupTestCLI(t)

	for _, args := range [][]string{
		{"exercise", "add", "squat"},
		{"set", "add", "squat"},
		{"set", "done", "abc"},
		{"rename", "Legs"},
		{"discard"},
	} {
		if err := run(t, args...); err == nil {
			t.Errorf("lift %s: expected error without active workout", strings.Join(args, " "))
		}
	}

	// Finishing and showing status while idle are not errors.
	mustRun(t, "finish")
	mustRun(t, "status")
}

func TestExerciseAddUnknownTemplate(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "start")
	err := run(t, "exercise", "add", "underwater_basket_weaving")
	if err == nil || !strings.Contains(err.Error(), "template not found") {
		t.Errorf("Expected template not found error, got %v", err)
	}
}

func TestSetUpdateCompletedIsFrozen(t *testing.T) {
	testDB := setupTestCLI(t)

	mustRun(t, "start")
	mustRun(t, "exercise", "add", "squat")
	mustRun(t, "set", "add", "squat")
	setID := unfinished(t, testDB).Exercises[0].Sets[0].ID

	mustRun(t, "set", "update", setID, "--weight", "140", "--reps", "5")
	mustRun(t, "set", "done", setID)

	if err := run(t, "set", "update", setID, "--weight", "150"); err == nil {
		t.Error("Expected error changing weight of a completed set")
	}

	// RPE and warmup may still change.
	mustRun(t, "set", "update", setID, "--rpe", "9")

	mustRun(t, "set", "undo", setID)
	mustRun(t, "set", "update", setID, "--weight", "150")

	s := unfinished(t, testDB).Exercises[0].Sets[0]
	if s.IsCompleted {
		t.Error("Expected set to be uncompleted")
	}
	if *s.WeightKg != 150 || s.RPE == nil || *s.RPE != 9 {
		t.Errorf("Unexpected set after updates: %+v", s)
	}
}

func TestSetUpdateRequiresAFlag(t *testing.T) {
	testDB := setupTestCLI(t)

	mustRun(t, "start")
	mustRun(t, "exercise", "add", "squat")
	mustRun(t, "set", "add", "squat")
	setID := unfinished(t, testDB).Exercises[0].Sets[0].ID

	if err := run(t, "set", "update", setID); err == nil {
		t.Error("Expected error for update without flags")
	}
	if err := run(t, "set", "update", setID, "--reps", "-1"); err == nil {
		t.Error("Expected error for negative reps")
	}
}

func TestRemoveSetRenumbers(t *testing.T) {
	testDB := setupTestCLI(t)

	mustRun(t, "start")
	mustRun(t, "exercise", "add", "deadlift")
	for i := 0; i < 3; i++ {
		mustRun(t, "set", "add", "deadlift")
	}
	sets := unfinished(t, testDB).Exercises[0].Sets
	mustRun(t, "set", "rm", sets[0].ID)

	sets = unfinished(t, testDB).Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(sets))
	}
	for i, s := range sets {
		if s.SetNumber != i+1 {
			t.Errorf("Expected set %d to be numbered %d, got %d", i, i+1, s.SetNumber)
		}
	}

	mustRun(t, "exercise", "rm", "deadlift")
	if n := len(unfinished(t, testDB).Exercises); n != 0 {
		t.Errorf("Expected no exercises, got %d", n)
	}
}

func TestDiscard(t *testing.T) {
	testDB := setupTestCLI(t)

	mustRun(t, "start", "Oops")
	mustRun(t, "exercise", "add", "plank")
	mustRun(t, "discard")

	if _, err := testDB.FindUnfinishedSession(context.Background()); err == nil {
		t.Error("Expected no unfinished workout after discard")
	}
	sessions, _ := testDB.ListFinishedSessions(context.Background(), 0)
	if len(sessions) != 0 {
		t.Errorf("Expected no finished workouts, got %d", len(sessions))
	}
}

func TestRename(t *testing.T) {
	testDB := setupTestCLI(t)

	mustRun(t, "start")
	mustRun(t, "rename", "Leg", "Day")
	if name := unfinished(t, testDB).Name; name != "Leg Day" {
		t.Errorf("Expected Leg Day, got %q", name)
	}
}

func TestShowNotFound(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "show", "nonexistent"); err == nil {
		t.Error("Expected error for unknown workout")
	}
}

func TestProgressUnknownTemplate(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "progress", "nope"); err == nil {
		t.Error("Expected error for unknown template")
	}
}

func TestCatalogCommands(t *testing.T) {
	testDB := setupTestCLI(t)

	mustRun(t, "catalog", "list")
	mustRun(t, "catalog", "list", "--muscle", "legs")
	if err := run(t, "catalog", "list", "--muscle", "wings"); err == nil {
		t.Error("Expected error for unknown muscle group")
	}

	mustRun(t, "catalog", "add", "Hack", "Squat", "--muscle", "legs", "--equipment", "machine")
	if err := run(t, "catalog", "add", "Nothing"); err == nil {
		t.Error("Expected error without --muscle")
	}

	legs := models.MuscleLegs
	templates, err := testDB.ListTemplates(context.Background(), &legs)
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	found := false
	for _, tpl := range templates {
		if tpl.Name == "Hack Squat" && tpl.IsCustom && tpl.Equipment == "machine" {
			found = true
		}
	}
	if !found {
		t.Error("Expected custom Hack Squat template")
	}
}

// finishOne logs and finishes a workout with one completed set.
func finishOne(t *testing.T, testDB *storage.DB, template, weight, reps string) {
	t.Helper()
	mustRun(t, "start")
	mustRun(t, "exercise", "add", template)
	mustRun(t, "set", "add", template)
	setID := unfinished(t, testDB).Exercises[0].Sets[0].ID
	mustRun(t, "set", "update", setID, "--weight", weight, "--reps", reps)
	mustRun(t, "set", "done", setID)
	mustRun(t, "finish")
}

func TestExportFormats(t *testing.T) {
	testDB := setupTestCLI(t)
	finishOne(t, testDB, "overhead_press", "50", "5")

	mustRun(t, "export", "json")
	mustRun(t, "export", "yaml")
	mustRun(t, "export", "markdown", "--since", "2020-01-01")

	if err := run(t, "export", "markdown", "--since", "yesterday"); err == nil {
		t.Error("Expected error for invalid --since")
	}
	if err := run(t, "export", "csv"); err == nil {
		t.Error("Expected error for invalid export format")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	testDB := setupTestCLI(t)
	finishOne(t, testDB, "barbell_row", "70", "8")

	file := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "json", "--output", file)
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("Expected export file: %v", err)
	}

	// Import into a fresh data directory.
	if err := closeRuntime(); err != nil {
		t.Fatalf("closeRuntime: %v", err)
	}
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "fresh"))
	mustRun(t, "import", file)

	fresh, err := storage.Open(filepath.Join(os.Getenv("XDG_DATA_HOME"), "lift", "lift.db"))
	if err != nil {
		t.Fatalf("Failed to open imported database: %v", err)
	}
	defer fresh.Close()

	sessions, err := fresh.ListFinishedSessions(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListFinishedSessions failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].TotalVolumeKg != 560 {
		t.Errorf("Expected 1 imported workout with 560 kg, got %+v", sessions)
	}

	if err := run(t, "import", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestMigrateDryRun(t *testing.T) {
	testDB := setupTestCLI(t)
	finishOne(t, testDB, "squat", "100", "5")

	mustRun(t, "migrate", "--to", "badger", "--dry-run")

	if _, err := os.Stat(filepath.Join(os.Getenv("XDG_DATA_HOME"), "lift", "badger")); !os.IsNotExist(err) {
		t.Error("Dry run should not create the badger store")
	}
}

func TestMigrateRejectsSameBackend(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "migrate", "--to", "sqlite"); err == nil {
		t.Error("Expected error migrating to the configured backend")
	}
	if err := run(t, "migrate", "--to", "postgres"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestMigrateToBadgerAndSwitch(t *testing.T) {
	testDB := setupTestCLI(t)
	finishOne(t, testDB, "squat", "100", "5")

	mustRun(t, "migrate", "--to", "badger", "--switch")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	if cfg.GetBackend() != config.BackendBadger {
		t.Fatalf("Expected backend badger, got %s", cfg.GetBackend())
	}

	// Commands now run against badger.
	mustRun(t, "history")
	mustRun(t, "progress", "squat")
	mustRun(t, "start", "On Badger")
	mustRun(t, "exercise", "add", "squat")
	mustRun(t, "finish")

	kv, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer kv.Close()

	sessions, err := kv.ListFinishedSessions(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListFinishedSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 workouts in badger, got %d", len(sessions))
	}
	if sessions[0].Name != "On Badger" || sessions[1].TotalVolumeKg != 500 {
		t.Errorf("Unexpected workouts in badger: %+v %+v", sessions[0], sessions[1])
	}
}

func TestConfigCommands(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "config", "set", "rest_seconds", "120")
	mustRun(t, "config", "show")
	mustRun(t, "config", "path")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	if cfg.GetRestSeconds() != 120 {
		t.Errorf("Expected rest_seconds 120, got %d", cfg.GetRestSeconds())
	}

	if err := run(t, "config", "set", "colour", "blue"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if err := run(t, "config", "set", "rest_seconds", "-5"); err == nil {
		t.Error("Expected error for negative rest_seconds")
	}
}

func TestMcpCmd(t *testing.T) {
	if mcpCmd.Flags().Lookup("http") == nil {
		t.Error("Expected --http flag on mcp command")
	}
}
