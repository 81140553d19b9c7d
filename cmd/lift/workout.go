// ABOUTME: CLI commands for the active workout lifecycle.
// ABOUTME: Supports start, status, rename, notes, finish, and discard.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/strength"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [name]",
	Short: "Start a workout",
	Long: `Start a new workout. Only one workout can be active at a time; finish or
discard the current one first.

Examples:
  lift start
  lift start "Push Day"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		id, err := manager.Start(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		w, _ := manager.Active()
		color.Green("✓ Started %s", w.Name)
		fmt.Printf("  ID: %s\n", shortID(id))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the active workout",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, ok := manager.Active()
		if !ok {
			fmt.Println("No active workout.")
			return nil
		}

		elapsed := int(time.Since(w.StartedAt) / time.Second)
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(w.Name), color.New(color.Faint).Sprint(shortID(w.SessionID)))
		fmt.Printf("Started: %s (%s ago)\n", w.StartedAt.Local().Format("2006-01-02 15:04"), formatDuration(elapsed))
		if w.Notes != nil && *w.Notes != "" {
			fmt.Printf("Notes: %s\n", *w.Notes)
		}

		for _, ex := range w.Exercises {
			printExercise(templateName(cmd.Context(), repo, ex.ExerciseTemplateID), ex.ID, ex.Sets)
		}

		fmt.Printf("\nVolume: %s\n", formatKg(strength.SessionVolume(w)))
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <name>",
	Short: "Rename the active workout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		if err := manager.RenameWorkout(cmd.Context(), name); err != nil {
			return fmt.Errorf("failed to rename workout: %w", err)
		}
		w, _ := manager.Active()
		color.Green("✓ Renamed to %s", w.Name)
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <text>",
	Short: "Set notes on the active workout",
	Long: `Replace the notes of the active workout. Pass an empty string to clear them.

Examples:
  lift notes "Felt strong, slept 8h"
  lift notes ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := manager.SetNotes(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to set notes: %w", err)
		}
		color.Green("✓ Updated notes")
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the active workout",
	Long: `Finish the active workout. Its duration and total volume (every completed
set with weight and reps, warmups included) are stored with it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, finished, err := manager.Finish(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}
		if !finished {
			fmt.Println("No active workout.")
			return nil
		}

		detail, err := repo.GetSessionDetail(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load finished workout: %w", err)
		}

		color.Green("✓ Finished %s", detail.Name)
		fmt.Printf("  ID: %s\n", shortID(detail.ID))
		fmt.Printf("  Duration: %s\n", formatDuration(detail.DurationSeconds))
		fmt.Printf("  Volume: %s\n", formatKg(detail.TotalVolumeKg))
		return nil
	},
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard the active workout",
	Long: `Delete the active workout with all its exercises and sets. There is no undo.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _ := manager.Active()
		if err := manager.Discard(cmd.Context()); err != nil {
			return fmt.Errorf("failed to discard workout: %w", err)
		}
		color.Yellow("✗ Discarded %s", w.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(discardCmd)
}
