// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/lift/internal/models"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps the SQLite database connection.
type DB struct {
	db     *sql.DB
	q      querier
	inTx   bool
	dbPath string
	log    logrus.FieldLogger
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)

// Open opens or creates a SQLite database at the given path and migrates it
// to the latest schema.
func Open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One local writer; also keeps per-connection pragmas in effect.
	db.SetMaxOpenConns(1)

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d := &DB{
		db:     db,
		q:      db,
		dbPath: dbPath,
		log:    logrus.WithField("component", "storage.sqlite"),
	}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	if err := d.seedCatalog(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	return d, nil
}

// OpenDefault opens the database at the default XDG data path.
func OpenDefault() (*DB, error) {
	return Open(DefaultDBPath())
}

// DataDir returns the default data directory following the XDG base directory layout.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lift")
}

// DefaultDBPath returns the default database path following the XDG base directory layout.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "lift.db")
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.inTx {
		return nil
	}
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// WithinTx runs fn inside a single SQLite transaction. Nested calls reuse the
// outer transaction.
func (d *DB) WithinTx(ctx context.Context, fn func(tx SessionStore) error) error {
	if d.inTx {
		return fn(d)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txDB := &DB{db: d.db, q: tx, inTx: true, dbPath: d.dbPath, log: d.log}
	if err := fn(txDB); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			d.log.WithError(rbErr).Warn("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// seedCatalog inserts the built-in exercise templates that are not present yet.
func (d *DB) seedCatalog(ctx context.Context) error {
	for _, t := range models.DefaultCatalog {
		_, err := d.q.ExecContext(ctx, `
			INSERT OR IGNORE INTO exercise_templates (id, name, muscle_group, equipment, is_custom, created_at)
			VALUES (?, ?, ?, ?, 0, ?)`,
			t.ID, t.Name, string(t.MuscleGroup), t.Equipment, formatTime(catalogEpoch),
		)
		if err != nil {
			return fmt.Errorf("insert template %s: %w", t.ID, err)
		}
	}
	return nil
}

// configurePragmas sets up SQLite for optimal performance.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
