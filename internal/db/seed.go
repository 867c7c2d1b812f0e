package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures:
// a small user roster, a handful of sentence pairs, and one annotation
// that has already moved through the review flow.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	users := []struct{ id, email, name, role string }{
		{"USER-001", "ana@example.com", "Ana Reyes", "annotator"},
		{"USER-002", "ben@example.com", "Ben Santos", "annotator"},
		{"USER-003", "carla@example.com", "Carla Lim", "evaluator"},
		{"USER-004", "root@example.com", "Site Admin", "admin"},
	}
	for _, u := range users {
		if _, err := database.Exec(
			"INSERT INTO users (id, email, full_name, role, is_active, created_at) VALUES (?, ?, ?, ?, 1, ?)",
			u.id, u.email, u.name, u.role, now,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	sentences := []struct{ id, src, mt, srcLang, tgtLang, domain string }{
		{"SENT-001", "Kumusta ka? Kumusta ang trabaho mo ngayon?", "How are you? How is your work today?", "fil", "en", "general"},
		{"SENT-002", "Ang pasyente ay inireseta ng gamot.", "The patient was prescribed of medicine.", "fil", "en", "medical"},
		{"SENT-003", "Pinagtibay ng korte ang desisyon.", "The court strengthened the decision.", "fil", "en", "legal"},
	}
	for _, s := range sentences {
		if _, err := database.Exec(
			"INSERT INTO sentences (id, source_text, machine_translation, source_language, target_language, domain, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?, 1, ?)",
			s.id, s.src, s.mt, s.srcLang, s.tgtLang, s.domain, now,
		); err != nil {
			return fmt.Errorf("seed sentences: %w", err)
		}
	}

	// One completed annotation with a highlight, awaiting review
	if _, err := database.Exec(
		`INSERT INTO annotations (id, sentence_id, annotator_id, fluency_score, adequacy_score, overall_quality, comments, final_form, status, created_at, updated_at)
		 VALUES ('ANN-001', 'SENT-002', 'USER-001', 3, 4, 3, 'preposition misuse', 'The patient was prescribed medicine.', 'completed', ?, ?)`,
		now, now,
	); err != nil {
		return fmt.Errorf("seed annotations: %w", err)
	}
	if _, err := database.Exec(
		`INSERT INTO text_highlights (annotation_id, start_index, end_index, text_type, error_type, highlighted_text, comment, created_at)
		 VALUES ('ANN-001', 12, 29, 'machine', 'MI_ST', 'was prescribed of', 'spurious preposition', ?)`,
		now,
	); err != nil {
		return fmt.Errorf("seed highlights: %w", err)
	}

	return nil
}
