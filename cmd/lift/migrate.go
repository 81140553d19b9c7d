// ABOUTME: CLI command for moving data between storage backends.
// ABOUTME: Copies everything from the configured backend into sqlite or badger.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy all workouts and custom exercises from the configured backend to another one.

BACKENDS:

  sqlite   Single file at <data_dir>/lift.db (default)
  badger   Key-value store in <data_dir>/badger/

IMPORTANT:

  - The destination must not contain any workouts yet
  - The source is left untouched
  - Run with --dry-run first to see what would be copied
  - Pass --switch to make the destination the configured backend afterwards

USAGE:

  lift migrate --to badger --dry-run
  lift migrate --to badger --switch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		from := cfg.GetBackend()
		if migrateTo != config.BackendSQLite && migrateTo != config.BackendBadger {
			return fmt.Errorf("unknown backend: %q (use %s or %s)", migrateTo, config.BackendSQLite, config.BackendBadger)
		}
		if migrateTo == from {
			return fmt.Errorf("%s is already the configured backend", from)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			data, err := storage.Export(ctx, repo)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", from, err)
			}
			fmt.Printf("Would copy from %s to %s:\n", from, migrateTo)
			printSummary(countExport(data))
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer func() {
			err = multierr.Append(err, dst.Close())
		}()

		summary, err := storage.MigrateData(ctx, repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Copied %s to %s", from, migrateTo)
		printSummary(summary)

		if migrateSwitch {
			cfg.Backend = migrateTo
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			color.Green("✓ Backend set to %s", migrateTo)
		}
		return nil
	},
}

func countExport(data *storage.ExportData) *storage.MigrateSummary {
	summary := &storage.MigrateSummary{
		Templates: len(data.Templates),
		Sessions:  len(data.Sessions),
	}
	for _, s := range data.Sessions {
		summary.Exercises += len(s.Exercises)
		for _, ex := range s.Exercises {
			summary.Sets += len(ex.Sets)
		}
	}
	return summary
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendBadger, "destination backend (sqlite or badger)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "use the destination as backend afterwards")
	rootCmd.AddCommand(migrateCmd)
}
