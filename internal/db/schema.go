package db

// SchemaSQL is the complete modern schema for fresh Lakra installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All
// repository tests load it via GetSchemaSQL() so test and production
// schemas cannot drift: if repository code references a column that is
// not here, tests fail immediately with "no such column".
//
// The two UNIQUE constraints below are load-bearing: they are the
// authoritative enforcement of "one annotation per (sentence,
// annotator)" and "one evaluation per (annotation, evaluator)".
// Application-level existence checks are advisory messages only.
//
// When adding columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Users (identity records referenced by annotations and reviews;
-- authentication happens outside Lakra)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	full_name TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('annotator', 'evaluator', 'admin')) DEFAULT 'annotator',
	languages TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Sentences (immutable source + machine translation pairs)
CREATE TABLE IF NOT EXISTS sentences (
	id TEXT PRIMARY KEY,
	source_text TEXT NOT NULL,
	machine_translation TEXT NOT NULL,
	source_language TEXT NOT NULL,
	target_language TEXT NOT NULL,
	domain TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Annotations (one annotator's work on one sentence)
CREATE TABLE IF NOT EXISTS annotations (
	id TEXT PRIMARY KEY,
	sentence_id TEXT NOT NULL,
	annotator_id TEXT NOT NULL,
	fluency_score INTEGER CHECK(fluency_score BETWEEN 1 AND 5),
	adequacy_score INTEGER CHECK(adequacy_score BETWEEN 1 AND 5),
	overall_quality INTEGER CHECK(overall_quality BETWEEN 1 AND 5),
	comments TEXT,
	final_form TEXT,
	voice_recording_url TEXT,
	voice_recording_duration INTEGER,
	time_spent_seconds INTEGER,
	status TEXT NOT NULL CHECK(status IN ('in_progress', 'completed', 'reviewed')) DEFAULT 'in_progress',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (sentence_id) REFERENCES sentences(id),
	FOREIGN KEY (annotator_id) REFERENCES users(id),
	UNIQUE(sentence_id, annotator_id)
);

CREATE INDEX IF NOT EXISTS idx_annotations_sentence ON annotations(sentence_id);
CREATE INDEX IF NOT EXISTS idx_annotations_annotator ON annotations(annotator_id);
CREATE INDEX IF NOT EXISTS idx_annotations_status ON annotations(status);

-- Text highlights (labeled spans over the machine translation,
-- replaced wholesale with their owning annotation)
CREATE TABLE IF NOT EXISTS text_highlights (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	annotation_id TEXT NOT NULL,
	start_index INTEGER NOT NULL,
	end_index INTEGER NOT NULL,
	text_type TEXT NOT NULL DEFAULT 'machine',
	error_type TEXT NOT NULL CHECK(error_type IN ('MI_ST', 'MI_SE', 'MA_ST', 'MA_SE')) DEFAULT 'MI_SE',
	highlighted_text TEXT NOT NULL,
	comment TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (annotation_id) REFERENCES annotations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_highlights_annotation ON text_highlights(annotation_id);

-- Annotation revisions (append-only evaluator decision ledger;
-- seq orders entries that share a created_at timestamp)
CREATE TABLE IF NOT EXISTS annotation_revisions (
	id TEXT PRIMARY KEY,
	annotation_id TEXT NOT NULL,
	evaluator_id TEXT NOT NULL,
	revision_type TEXT NOT NULL CHECK(revision_type IN ('approve', 'revise')),
	revised_snapshot TEXT,
	revision_notes TEXT,
	revision_reason TEXT,
	seq INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (annotation_id) REFERENCES annotations(id) ON DELETE CASCADE,
	FOREIGN KEY (evaluator_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_revisions_annotation ON annotation_revisions(annotation_id);

-- Evaluations (legacy parallel path: scoring an annotation without
-- revising it)
CREATE TABLE IF NOT EXISTS evaluations (
	id TEXT PRIMARY KEY,
	annotation_id TEXT NOT NULL,
	evaluator_id TEXT NOT NULL,
	annotation_quality_score INTEGER CHECK(annotation_quality_score BETWEEN 1 AND 5),
	accuracy_score INTEGER CHECK(accuracy_score BETWEEN 1 AND 5),
	completeness_score INTEGER CHECK(completeness_score BETWEEN 1 AND 5),
	overall_evaluation_score INTEGER CHECK(overall_evaluation_score BETWEEN 1 AND 5),
	feedback TEXT,
	evaluation_notes TEXT,
	time_spent_seconds INTEGER,
	status TEXT NOT NULL CHECK(status IN ('in_progress', 'completed')) DEFAULT 'in_progress',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (annotation_id) REFERENCES annotations(id) ON DELETE CASCADE,
	FOREIGN KEY (evaluator_id) REFERENCES users(id),
	UNIQUE(annotation_id, evaluator_id)
);

CREATE INDEX IF NOT EXISTS idx_evaluations_annotation ON evaluations(annotation_id);
CREATE INDEX IF NOT EXISTS idx_evaluations_evaluator ON evaluations(evaluator_id);

-- Activity log (audit trail). Entries are never updated or deleted;
-- no foreign keys so the trail survives entity deletion.
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
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create modern schema directly and
		// mark all migrations as applied so they never run.
		if _, err = db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
