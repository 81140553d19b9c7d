// ABOUTME: Root Cobra command for lift CLI.
// ABOUTME: Loads config, sets up logging and owns the storage and workout engine lifecycle.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/logging"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/storage"
	"github.com/harperreed/lift/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// noStorage marks commands that run without opening the data store.
const noStorage = "no-storage"

var (
	cfg          *config.Config
	repo         storage.Repository
	manager      *session.Manager
	promRegistry *prometheus.Registry
	logCloser    io.Closer

	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "lift",
	Short: "Strength training logger",
	Long: `Lift is a CLI tool for logging strength training sessions.

A workout is started, exercises from the catalog are added to it, and sets are
logged and checked off as you go. Every change is saved immediately, so a
workout survives a crash or a closed terminal and is resumed on the next run.

QUICK START:

  $ lift start "Push Day"                  # Start a workout
  $ lift exercise add bench_press          # Add an exercise from the catalog
  $ lift set add bench_press               # Add a set (copies the previous one)
  $ lift set update 3f2a --weight 100 --reps 5
  $ lift set done 3f2a                     # Check the set off
  $ lift status                            # See the workout so far
  $ lift finish                            # Save duration and total volume

HISTORY AND PROGRESS:

  $ lift history                           # Finished workouts
  $ lift show abc123                       # One workout in detail
  $ lift progress squat                    # Trend, rep records and advice

IDs can be shortened to any unique prefix. Exercises can also be referred to
by their catalog ID (e.g. bench_press).

MCP INTEGRATION:

  Run 'lift mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Workouts are stored in SQLite at ~/.local/share/lift/lift.db by default.
  Run 'lift config set backend badger' to use the Badger key-value store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.GetLogLevel()
		if logLevel != "" {
			level = logLevel
		}
		logCloser = logging.Setup(logging.LoggerSetupParams{
			LogFileName:   cfg.GetLogFile(),
			LogLevel:      level,
			LogFormatJSON: cfg.LogJSON,
		})

		if skipsStorage(cmd) {
			return nil
		}
		return openRuntime(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
}

// Execute runs the root command and releases storage even when the command failed.
func Execute() error {
	err := rootCmd.Execute()
	return multierr.Append(err, closeRuntime())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

func skipsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[noStorage]; ok {
			return true
		}
	}
	return cmd.Name() == "help" || cmd.Name() == "completion"
}

// openRuntime opens the configured backend and resumes any unfinished workout.
func openRuntime(cmd *cobra.Command) error {
	var err error
	repo, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	promRegistry = telemetry.SetupPrometheus()
	manager = session.NewManager(repo,
		session.WithMetrics(telemetry.NewMetrics("lift", "", promRegistry)),
		session.WithSetCompletionListener(restHint(cmd.OutOrStdout(), cfg.GetRestSeconds())),
		session.WithFinishListener(session.FinishFunc(logFinished)),
	)

	if _, err := manager.Resume(cmd.Context()); err != nil {
		return fmt.Errorf("failed to resume workout: %w", err)
	}
	return nil
}

// closeRuntime waits for the engine and closes storage and the log file. It is
// safe to call more than once.
func closeRuntime() error {
	var err error
	if manager != nil {
		manager.Close()
		manager = nil
	}
	if repo != nil {
		err = multierr.Append(err, repo.Close())
		repo = nil
	}
	if logCloser != nil {
		err = multierr.Append(err, logCloser.Close())
		logCloser = nil
	}
	return err
}

// restHint prints a rest reminder after each completed set.
func restHint(out io.Writer, restSeconds int) session.SetCompletionFunc {
	rest := time.Duration(restSeconds) * time.Second
	faint := color.New(color.Faint)
	return func(exerciseID, setID string) {
		_, _ = faint.Fprintf(out, "  rest %s, next set at %s\n", rest, time.Now().Add(rest).Format("15:04:05"))
	}
}

func logFinished(summary session.FinishSummary) {
	logrus.WithField("session_id", summary.SessionID).
		WithField("duration_seconds", summary.DurationSeconds).
		WithField("volume_kg", summary.TotalVolumeKg).
		WithField("completed_sets", summary.CompletedSets).
		Info("workout finished")
}
