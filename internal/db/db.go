package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssanyal/graha/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/graha.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.graha.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	_ = os.Chmod(exportsDir, 0700)

	// Pragmas in the connection string apply to every pooled connection.
	dbPath := filepath.Join(baseDir, "graha.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS analyses (
		  id             TEXT PRIMARY KEY,
		  kind           TEXT NOT NULL,
		  birth_datetime TEXT NOT NULL,
		  latitude       REAL NOT NULL,
		  longitude      REAL NOT NULL,
		  ayanamsa       TEXT NOT NULL,
		  result_json    TEXT NOT NULL,
		  created_at     INTEGER NOT NULL,
		  deleted_at     INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_analyses_kind_created
		ON analyses(kind, created_at DESC)
		WHERE deleted_at IS NULL;

		CREATE INDEX IF NOT EXISTS idx_analyses_created
		ON analyses(created_at DESC)
		WHERE deleted_at IS NULL;

		CREATE TABLE IF NOT EXISTS temporal_runs (
		  id         TEXT PRIMARY KEY,
		  start_date TEXT NOT NULL,
		  end_date   TEXT NOT NULL,
		  latitude   REAL NOT NULL,
		  longitude  REAL NOT NULL,
		  ayanamsa   TEXT NOT NULL,
		  day_count  INTEGER NOT NULL,
		  gap_count  INTEGER NOT NULL,
		  created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS temporal_points (
		  run_id           TEXT NOT NULL,
		  date             TEXT NOT NULL,
		  planet           TEXT NOT NULL,
		  numerology_score REAL NOT NULL,
		  dignity_score    REAL NOT NULL,
		  PRIMARY KEY (run_id, date, planet),
		  FOREIGN KEY (run_id) REFERENCES temporal_runs(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_temporal_points_run_planet
		ON temporal_points(run_id, planet, date);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
