// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All setup goes through db.GetSchemaSQL() so the tests can never
// drift from the authoritative schema. Do not hardcode CREATE TABLE
// statements in test files; use setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wimarka-uic/lakra-sub002/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns their ID.
func seedUser(t *testing.T, db *sql.DB, id, email, role string) string {
	t.Helper()
	if id == "" {
		id = "USER-001"
	}
	if email == "" {
		email = id + "@example.com"
	}
	if role == "" {
		role = "annotator"
	}
	_, err := db.Exec("INSERT INTO users (id, email, full_name, role) VALUES (?, ?, 'Test User', ?)", id, email, role)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedSentence inserts a test sentence and returns its ID.
func seedSentence(t *testing.T, db *sql.DB, id, machineTranslation string) string {
	t.Helper()
	if id == "" {
		id = "SENT-001"
	}
	if machineTranslation == "" {
		machineTranslation = "How are you? How is your work today?"
	}
	_, err := db.Exec(
		"INSERT INTO sentences (id, source_text, machine_translation, source_language, target_language) VALUES (?, 'Kumusta ka?', ?, 'fil', 'en')",
		id, machineTranslation)
	if err != nil {
		t.Fatalf("failed to seed sentence: %v", err)
	}
	return id
}

// seedAnnotation inserts a test annotation and returns its ID.
func seedAnnotation(t *testing.T, db *sql.DB, id, sentenceID, annotatorID, status string) string {
	t.Helper()
	if id == "" {
		id = "ANN-001"
	}
	if sentenceID == "" {
		sentenceID = "SENT-001"
	}
	if annotatorID == "" {
		annotatorID = "USER-001"
	}
	if status == "" {
		status = "in_progress"
	}
	_, err := db.Exec("INSERT INTO annotations (id, sentence_id, annotator_id, status) VALUES (?, ?, ?, ?)",
		id, sentenceID, annotatorID, status)
	if err != nil {
		t.Fatalf("failed to seed annotation: %v", err)
	}
	return id
}
