// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Supports listing templates and adding custom ones.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/spf13/cobra"
)

var (
	catalogMuscle    string
	catalogEquipment string
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"cat"},
	Short:   "Browse and extend the exercise catalog",
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercise templates",
	Long: `List exercise templates. The first column is the ID to pass to
'lift exercise add' and 'lift progress'.

Muscle groups: chest, back, shoulders, biceps, triceps, legs, glutes, core, full_body`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var muscle *models.MuscleGroup
		if catalogMuscle != "" {
			if !models.IsValidMuscleGroup(catalogMuscle) {
				return fmt.Errorf("unknown muscle group: %s", catalogMuscle)
			}
			mg := models.MuscleGroup(catalogMuscle)
			muscle = &mg
		}

		templates, err := repo.ListTemplates(cmd.Context(), muscle)
		if err != nil {
			return fmt.Errorf("failed to list catalog: %w", err)
		}
		if len(templates) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			id := t.ID
			if t.IsCustom {
				id = shortID(id)
			}
			custom := ""
			if t.IsCustom {
				custom = faint.Sprint(" (custom)")
			}
			fmt.Printf("%s %s %s %s%s\n",
				padRight(id, 22),
				padRight(t.Name, 22),
				faint.Sprint(padRight(string(t.MuscleGroup), 10)),
				faint.Sprint(t.Equipment),
				custom)
		}
		return nil
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise template",
	Long: `Add a custom exercise to the catalog.

Examples:
  lift catalog add "Hack Squat" --muscle legs --equipment machine
  lift catalog add "Ring Dip" --muscle triceps`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			return fmt.Errorf("name must not be empty")
		}
		if !models.IsValidMuscleGroup(catalogMuscle) {
			return fmt.Errorf("unknown muscle group: %q (use --muscle)", catalogMuscle)
		}

		t := models.NewExerciseTemplate(name, models.MuscleGroup(catalogMuscle), catalogEquipment)
		if err := repo.CreateTemplate(cmd.Context(), t); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", t.Name)
		fmt.Printf("  ID: %s\n", t.ID)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringVarP(&catalogMuscle, "muscle", "m", "", "filter by muscle group")

	catalogAddCmd.Flags().StringVarP(&catalogMuscle, "muscle", "m", "", "primary muscle group")
	catalogAddCmd.Flags().StringVarP(&catalogEquipment, "equipment", "e", models.EquipmentBodyweight, "equipment used")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	rootCmd.AddCommand(catalogCmd)
}
