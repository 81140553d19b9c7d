// ABOUTME: CLI commands for finished workouts and progression.
// ABOUTME: Supports history, show, and progress.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/progress"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	progressLimit int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls", "list"},
	Short:   "List finished workouts",
	Long: `List finished workouts, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  STARTED  NAME  DURATION  VOLUME

  The ID is an 8-character prefix you can use with 'lift show'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := repo.ListFinishedSessions(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(shortID(s.ID)),
				faint.Sprint(s.StartedAt.Local().Format("2006-01-02 15:04")),
				padRight(truncate(s.Name, 20), 20),
				padRight(formatDuration(s.DurationSeconds), 7),
				formatKg(s.TotalVolumeKg))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetSessionDetail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		fmt.Printf("Workout: %s\n", shortID(w.ID))
		fmt.Printf("Name: %s\n", w.Name)
		fmt.Printf("Started: %s\n", w.StartedAt.Local().Format("2006-01-02 15:04"))
		if w.IsFinished() {
			fmt.Printf("Duration: %s\n", formatDuration(w.DurationSeconds))
			fmt.Printf("Volume: %s\n", formatKg(w.TotalVolumeKg))
		} else {
			fmt.Println("In progress")
		}
		if w.Notes != nil && *w.Notes != "" {
			fmt.Printf("Notes: %s\n", *w.Notes)
		}

		for _, ex := range w.Exercises {
			printExercise(templateName(cmd.Context(), repo, ex.ExerciseTemplateID), ex.ID, ex.Sets)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <template-id>",
	Short: "Show progression of an exercise",
	Long: `Analyse the most recent finished sessions of an exercise.

Shows, per session, the heaviest working set, the working volume and the best
estimated one-rep max (Epley). The trend compares the average estimate of the
last three sessions with the three before; a change beyond 3% is progress or
decline. Rep records are the heaviest weights lifted for 1, 3, 5, 10 and 20
reps (within one rep; the 1RM record may be estimated). Warmups are ignored.

Examples:
  lift progress squat
  lift progress bench_press --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := repo.GetTemplate(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("exercise template not found: %s", args[0])
		}

		limit := progressLimit
		if limit <= 0 {
			limit = cfg.GetHistoryLimit()
		}

		report, err := progress.NewAnalyzer(repo).Analyze(cmd.Context(), tpl.ID, limit)
		if err != nil {
			return fmt.Errorf("failed to analyse progress: %w", err)
		}

		printReport(tpl.Name, report)
		return nil
	},
}

func printReport(name string, report *progress.Report) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Println(bold.Sprint(name))
	if len(report.Sessions) == 0 {
		fmt.Println("No finished sessions yet.")
	}
	for _, s := range report.Sessions {
		oneRM := "-"
		if s.Best1RM != nil {
			oneRM = formatKg(*s.Best1RM)
		}
		fmt.Printf("  %s %s max %s vol %s e1RM %s\n",
			faint.Sprint(s.Date.Local().Format("2006-01-02")),
			padRight(truncate(s.Name, 16), 16),
			padRight(formatKg(s.MaxWeightKg), 10),
			padRight(formatKg(s.TotalVolumeKg), 11),
			oneRM)
	}

	trend := string(report.Trend)
	switch report.Trend {
	case progress.Progressing:
		trend = color.GreenString(trend)
	case progress.Declining:
		trend = color.RedString(trend)
	case progress.Stalling:
		trend = color.YellowString(trend)
	}
	if report.ChangePct != nil {
		trend += fmt.Sprintf(" (%+.1f%%)", *report.ChangePct)
	}
	fmt.Printf("\nTrend: %s\n", trend)

	fmt.Println("\nRecords:")
	for _, r := range report.Records {
		if r.WeightKg == nil {
			fmt.Printf("  %2d RM  %s\n", r.Reps, faint.Sprint("-"))
			continue
		}
		suffix := ""
		if r.Estimated {
			suffix = faint.Sprint(" (estimated)")
		}
		fmt.Printf("  %2d RM  %s %s%s\n", r.Reps, padRight(formatKg(*r.WeightKg), 10),
			faint.Sprint(r.Date.Local().Format("2006-01-02")), suffix)
	}

	fmt.Printf("\n%s\n", report.Advice)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	progressCmd.Flags().IntVarP(&progressLimit, "limit", "n", 0, "number of recent sessions to analyse (default from config)")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(progressCmd)
}
