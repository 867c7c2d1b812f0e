package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_error_type_to_text_highlights",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_voice_recording_to_annotations",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_seq_to_annotation_revisions",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "add_activity_log",
		Up:      migrationV4,
	},
}

// migrationV1 classifies existing highlights. Early installs stored
// highlights without an error type; everything unclassified becomes
// the historical default MI_SE.
func migrationV1(db *sql.DB) error {
	if _, err := db.Exec("ALTER TABLE text_highlights ADD COLUMN error_type TEXT NOT NULL DEFAULT 'MI_SE'"); err != nil {
		return fmt.Errorf("failed to add error_type column: %w", err)
	}
	return nil
}

// migrationV2 adds the voice recording reference columns.
func migrationV2(db *sql.DB) error {
	if _, err := db.Exec("ALTER TABLE annotations ADD COLUMN voice_recording_url TEXT"); err != nil {
		return fmt.Errorf("failed to add voice_recording_url column: %w", err)
	}
	if _, err := db.Exec("ALTER TABLE annotations ADD COLUMN voice_recording_duration INTEGER"); err != nil {
		return fmt.Errorf("failed to add voice_recording_duration column: %w", err)
	}
	return nil
}

// migrationV3 adds the commit-order sequence to the revision ledger
// and backfills it from rowid, which matches insert order on SQLite.
func migrationV3(db *sql.DB) error {
	if _, err := db.Exec("ALTER TABLE annotation_revisions ADD COLUMN seq INTEGER NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("failed to add seq column: %w", err)
	}
	if _, err := db.Exec("UPDATE annotation_revisions SET seq = rowid"); err != nil {
		return fmt.Errorf("failed to backfill seq: %w", err)
	}
	return nil
}

// migrationV4 adds the activity log audit trail.
func migrationV4(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS activity_log (
			id TEXT PRIMARY KEY,
			actor_id TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL,
			field_name TEXT,
			old_value TEXT,
			new_value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_activity_log_actor ON activity_log(actor_id);
		CREATE INDEX IF NOT EXISTS idx_activity_log_entity ON activity_log(entity_type, entity_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create activity_log table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		if err := migration.Up(db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
