// ABOUTME: CLI commands for exercises and sets of the active workout.
// ABOUTME: Supports exercise add/rm and set add/update/done/undo/rm.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/spf13/cobra"
)

var (
	setWeight   float64
	setReps     int
	setDuration int
	setRPE      float64
	setWarmup   bool
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Add or remove exercises of the active workout",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <template-id>",
	Short: "Add an exercise from the catalog",
	Long: `Add an exercise from the catalog to the active workout. It starts without sets.

Examples:
  lift exercise add bench_press
  lift exercise add squat

Run 'lift catalog list' to see the available exercises.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := repo.GetTemplate(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("exercise template not found: %s", args[0])
		}

		id, err := manager.AddExercise(cmd.Context(), *tpl)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", tpl.Name)
		fmt.Printf("  ID: %s\n", shortID(id))
		return nil
	},
}

var exerciseRemoveCmd = &cobra.Command{
	Use:     "rm <exercise>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove an exercise and its sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, err := manager.ResolveExercise(args[0])
		if err != nil {
			return err
		}
		if err := manager.RemoveExercise(cmd.Context(), exID); err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}
		color.Yellow("✗ Removed exercise %s", shortID(exID))
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Log sets of the active workout",
	Long: `Log sets of the active workout.

WORKFLOW:

  1. Add a set:        lift set add bench_press
  2. Enter the load:   lift set update 3f2a --weight 100 --reps 5
  3. Check it off:     lift set done 3f2a

A new set copies weight and reps from the previous set of the exercise.
Weight and reps of a completed set cannot change until it is undone.`,
}

var setAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Add a set to an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, err := manager.ResolveExercise(args[0])
		if err != nil {
			return err
		}

		id, err := manager.AddSet(cmd.Context(), exID)
		if err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}

		color.Green("✓ Added set")
		fmt.Printf("  ID: %s\n", shortID(id))
		return nil
	},
}

var setUpdateCmd = &cobra.Command{
	Use:   "update <set>",
	Short: "Change weight, reps, duration, RPE or warmup flag of a set",
	Long: `Change fields of a set. Only the flags given are changed.

Examples:
  lift set update 3f2a --weight 102.5 --reps 5
  lift set update 3f2a --rpe 8.5
  lift set update 3f2a --warmup
  lift set update 9c01 --duration 60`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, setID, err := manager.ResolveSet(args[0])
		if err != nil {
			return err
		}

		var patch models.SetPatch
		flags := cmd.Flags()
		if flags.Changed("weight") {
			patch.WeightKg = models.Float(setWeight)
		}
		if flags.Changed("reps") {
			patch.Reps = models.Int(setReps)
		}
		if flags.Changed("duration") {
			patch.DurationSeconds = models.Int(setDuration)
		}
		if flags.Changed("rpe") {
			patch.RPE = models.Float(setRPE)
		}
		if flags.Changed("warmup") {
			patch.IsWarmup = models.Bool(setWarmup)
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass --weight, --reps, --duration, --rpe or --warmup")
		}

		if err := manager.UpdateSet(cmd.Context(), exID, setID, patch); err != nil {
			return fmt.Errorf("failed to update set: %w", err)
		}
		color.Green("✓ Updated set %s", shortID(setID))
		return nil
	},
}

var setDoneCmd = &cobra.Command{
	Use:     "done <set>",
	Aliases: []string{"complete"},
	Short:   "Mark a set as completed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, setID, err := manager.ResolveSet(args[0])
		if err != nil {
			return err
		}
		if err := manager.CompleteSet(cmd.Context(), exID, setID); err != nil {
			return fmt.Errorf("failed to complete set: %w", err)
		}
		color.Green("✓ Completed set %s", shortID(setID))
		return nil
	},
}

var setUndoCmd = &cobra.Command{
	Use:     "undo <set>",
	Aliases: []string{"uncomplete"},
	Short:   "Mark a completed set as not done",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, setID, err := manager.ResolveSet(args[0])
		if err != nil {
			return err
		}
		if err := manager.UncompleteSet(cmd.Context(), exID, setID); err != nil {
			return fmt.Errorf("failed to uncomplete set: %w", err)
		}
		color.Yellow("Uncompleted set %s", shortID(setID))
		return nil
	},
}

var setRemoveCmd = &cobra.Command{
	Use:     "rm <set>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a set; later sets are renumbered",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, setID, err := manager.ResolveSet(args[0])
		if err != nil {
			return err
		}
		if err := manager.RemoveSet(cmd.Context(), exID, setID); err != nil {
			return fmt.Errorf("failed to remove set: %w", err)
		}
		color.Yellow("✗ Removed set %s", shortID(setID))
		return nil
	},
}

func init() {
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRemoveCmd)
	rootCmd.AddCommand(exerciseCmd)

	setUpdateCmd.Flags().Float64VarP(&setWeight, "weight", "w", 0, "weight in kg")
	setUpdateCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "repetitions")
	setUpdateCmd.Flags().IntVarP(&setDuration, "duration", "d", 0, "duration in seconds")
	setUpdateCmd.Flags().Float64Var(&setRPE, "rpe", 0, "rate of perceived exertion (1-10)")
	setUpdateCmd.Flags().BoolVar(&setWarmup, "warmup", false, "mark as warmup set (--warmup=false to clear)")

	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setUpdateCmd)
	setCmd.AddCommand(setDoneCmd)
	setCmd.AddCommand(setUndoCmd)
	setCmd.AddCommand(setRemoveCmd)
	rootCmd.AddCommand(setCmd)
}
