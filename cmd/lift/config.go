// ABOUTME: CLI commands for viewing and changing lift settings.
// ABOUTME: Supports config show, config set, and config path.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View and change settings",
	Annotations: map[string]string{noStorage: ""},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := cfg.Effective()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		faint := color.New(color.Faint)
		for _, k := range keys {
			v := settings[k]
			if v == "" {
				v = faint.Sprint("(unset)")
			}
			fmt.Printf("%s %s\n", padRight(k, 14), v)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it to the config file.

KEYS:

  backend        sqlite or badger
  data_dir       data directory (~ is expanded)
  log_level      trace, debug, info, warn or error
  log_file       rotated log file; empty logs to stderr
  log_json       true for JSON log lines
  history_limit  sessions analysed by 'lift progress'
  rest_seconds   rest period suggested after each completed set

Examples:
  lift config set rest_seconds 120
  lift config set backend badger`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ Set %s = %s", args[0], cfg.Effective()[args[0]])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
