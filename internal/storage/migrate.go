// ABOUTME: Data migration between lift storage backends.
// ABOUTME: Copies custom templates, sessions, exercises, and sets from source to destination.

package storage

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Templates int
	Sessions  int
	Exercises int
	Sets      int
}

// MigrateData copies all data from src to dst storage. The destination should
// hold no sessions before calling this function.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	data, err := Export(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	existing, err := dst.ListFinishedSessions(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("check destination: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("destination already contains sessions")
	}

	summary, err := Import(ctx, dst, data)
	if err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}
	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
