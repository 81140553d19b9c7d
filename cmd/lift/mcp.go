// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs the MCP server over stdio, or over HTTP with Prometheus metrics.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/lift/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log workouts and read your training
history through a standardized protocol. By default the server communicates
via stdin/stdout. With --http it serves streamable HTTP at /mcp, Prometheus
metrics at /metrics and a liveness probe at /healthz.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "lift": {
        "command": "lift",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  start_workout       Start a workout
  add_exercise        Add a catalog exercise to the workout
  add_set             Add a set (copies the previous one)
  update_set          Change weight, reps, duration, RPE or warmup flag
  complete_set        Check a set off
  uncomplete_set      Undo a completed set
  remove_set          Remove a set
  remove_exercise     Remove an exercise
  rename_workout      Rename the workout
  set_workout_notes   Replace the workout notes
  finish_workout      Finish and store the workout
  discard_workout     Delete the workout
  get_active_workout  Show the workout in progress
  list_catalog        List exercise templates
  exercise_progress   Trend, rep records and advice for an exercise
  list_workouts       List finished workouts
  get_workout         Get a stored workout

AVAILABLE RESOURCES:

  lift://active    The workout in progress
  lift://recent    Last 10 finished workouts
  lift://catalog   Exercise templates by muscle group`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, manager, cfg.GetHistoryLimit())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		if mcpHTTPAddr != "" {
			return server.ServeHTTP(ctx, mcpHTTPAddr, promRegistry)
		}
		return server.Serve(ctx)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve streamable HTTP on this address (e.g. :8080) instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}
