// ABOUTME: CLI commands for exporting and importing workout data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export workout data",
	Long: `Export workout data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, exercise names instead of IDs)
  markdown   Markdown tables per workout (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include workouts since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  lift export json                         # Export all data as JSON
  lift export json -o backup.json          # Save to file
  lift export yaml                         # Export as YAML
  lift export markdown --since 2025-01-01  # Workouts from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		ctx := cmd.Context()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(ctx, repo)
		case "yaml":
			data, err = storage.ExportYAML(ctx, repo)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := parseTime(exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			md, err := storage.ExportMarkdown(ctx, repo, since)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workout data from JSON",
	Long: `Import workout data from a JSON backup file.

This imports custom exercises and workouts from a previously exported JSON
file. Duplicate entries (same ID) will cause an error.

EXAMPLES:

  lift import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		summary, err := storage.ImportJSON(cmd.Context(), repo, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		printSummary(summary)
		return nil
	},
}

func printSummary(s *storage.MigrateSummary) {
	fmt.Printf("  Templates: %d\n", s.Templates)
	fmt.Printf("  Workouts:  %d\n", s.Sessions)
	fmt.Printf("  Exercises: %d\n", s.Exercises)
	fmt.Printf("  Sets:      %d\n", s.Sets)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include workouts since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
