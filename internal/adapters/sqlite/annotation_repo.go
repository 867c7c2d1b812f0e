package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// AnnotationRepository implements secondary.AnnotationRepository with
// SQLite. The annotation row and its highlight rows always change in
// one transaction.
type AnnotationRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewAnnotationRepository creates a new SQLite annotation repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewAnnotationRepository(db *sql.DB, logWriter secondary.LogWriter) *AnnotationRepository {
	return &AnnotationRepository{db: db, logWriter: logWriter}
}

const annotationColumns = "id, sentence_id, annotator_id, fluency_score, adequacy_score, overall_quality, comments, final_form, voice_recording_url, voice_recording_duration, time_spent_seconds, status, created_at, updated_at"

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullStr(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func scanAnnotation(scan func(dest ...any) error) (*secondary.AnnotationRecord, error) {
	var (
		fluency, adequacy, overall sql.NullInt64
		comments, finalForm        sql.NullString
		recordingURL               sql.NullString
		recordingDuration          sql.NullInt64
		timeSpent                  sql.NullInt64
		createdAt, updatedAt       time.Time
	)
	record := &secondary.AnnotationRecord{}
	err := scan(&record.ID, &record.SentenceID, &record.AnnotatorID,
		&fluency, &adequacy, &overall, &comments, &finalForm,
		&recordingURL, &recordingDuration, &timeSpent,
		&record.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.FluencyScore = intPtr(fluency)
	record.AdequacyScore = intPtr(adequacy)
	record.OverallQuality = intPtr(overall)
	record.Comments = comments.String
	record.FinalForm = finalForm.String
	record.VoiceRecordingURL = recordingURL.String
	record.VoiceRecordingDuration = intPtr(recordingDuration)
	record.TimeSpentSeconds = intPtr(timeSpent)
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new annotation. The UNIQUE(sentence_id,
// annotator_id) constraint is the authoritative duplicate check: when
// two concurrent creates race, exactly one insert commits and the
// other surfaces here as errs.ErrDuplicate.
func (r *AnnotationRepository) Create(ctx context.Context, record *secondary.AnnotationRecord) error {
	status := record.Status
	if status == "" {
		status = "in_progress"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO annotations (id, sentence_id, annotator_id, status) VALUES (?, ?, ?, ?)",
		record.ID, record.SentenceID, record.AnnotatorID, status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Duplicatef("annotation for sentence %s by annotator %s", record.SentenceID, record.AnnotatorID)
		}
		return fmt.Errorf("failed to create annotation: %w", err)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "annotation", record.ID)
	}
	return nil
}

// GetByID retrieves an annotation with its highlights.
func (r *AnnotationRepository) GetByID(ctx context.Context, id string) (*secondary.AnnotationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+annotationColumns+" FROM annotations WHERE id = ?", id)
	record, err := scanAnnotation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("annotation %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}

	record.Highlights, err = r.loadHighlights(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetBySentenceAndAnnotator retrieves the unique annotation for the pair.
func (r *AnnotationRepository) GetBySentenceAndAnnotator(ctx context.Context, sentenceID, annotatorID string) (*secondary.AnnotationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+annotationColumns+" FROM annotations WHERE sentence_id = ? AND annotator_id = ?",
		sentenceID, annotatorID)
	record, err := scanAnnotation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("annotation for sentence %s by annotator %s", sentenceID, annotatorID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}

	record.Highlights, err = r.loadHighlights(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *AnnotationRepository) loadHighlights(ctx context.Context, annotationID string) ([]secondary.HighlightRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, annotation_id, start_index, end_index, text_type, error_type, highlighted_text, comment, created_at FROM text_highlights WHERE annotation_id = ? ORDER BY id",
		annotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load highlights: %w", err)
	}
	defer rows.Close()

	var highlights []secondary.HighlightRecord
	for rows.Next() {
		var (
			h         secondary.HighlightRecord
			comment   sql.NullString
			createdAt time.Time
		)
		err := rows.Scan(&h.ID, &h.AnnotationID, &h.StartIndex, &h.EndIndex,
			&h.TextType, &h.ErrorType, &h.HighlightedText, &comment, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan highlight: %w", err)
		}
		h.Comment = comment.String
		h.CreatedAt = createdAt.Format(time.RFC3339)
		highlights = append(highlights, h)
	}
	return highlights, rows.Err()
}

// List retrieves annotations (without highlights) matching the filters.
func (r *AnnotationRepository) List(ctx context.Context, filters secondary.AnnotationFilters) ([]*secondary.AnnotationRecord, error) {
	q := sq.Select(annotationColumns).From("annotations").OrderBy("created_at DESC, id DESC")
	if filters.SentenceID != "" {
		q = q.Where(sq.Eq{"sentence_id": filters.SentenceID})
	}
	if filters.AnnotatorID != "" {
		q = q.Where(sq.Eq{"annotator_id": filters.AnnotatorID})
	}
	if filters.Status != "" {
		q = q.Where(sq.Eq{"status": filters.Status})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build annotation query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer rows.Close()

	var annotations []*secondary.AnnotationRecord
	for rows.Next() {
		record, err := scanAnnotation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		annotations = append(annotations, record)
	}
	return annotations, rows.Err()
}

// Update rewrites the record's mutable fields and replaces its
// highlight rows in one transaction. A failure at any point leaves the
// previous record+spans state intact.
func (r *AnnotationRepository) Update(ctx context.Context, record *secondary.AnnotationRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateAnnotationTx(ctx, tx, record); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit annotation update: %w", err)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "annotation", record.ID, "draft", "", "")
	}
	return nil
}

// updateAnnotationTx writes the annotation fields and replaces the
// highlight rows inside an open transaction. Shared with the revision
// repository, whose ledger append must land in the same transaction.
func updateAnnotationTx(ctx context.Context, tx *sql.Tx, record *secondary.AnnotationRecord) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE annotations SET
			fluency_score = ?, adequacy_score = ?, overall_quality = ?,
			comments = ?, final_form = ?, time_spent_seconds = ?,
			status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		nullInt(record.FluencyScore), nullInt(record.AdequacyScore), nullInt(record.OverallQuality),
		nullStr(record.Comments), nullStr(record.FinalForm), nullInt(record.TimeSpentSeconds),
		record.Status, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("annotation %s", record.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM text_highlights WHERE annotation_id = ?", record.ID); err != nil {
		return fmt.Errorf("failed to clear highlights: %w", err)
	}
	for _, h := range record.Highlights {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO text_highlights (annotation_id, start_index, end_index, text_type, error_type, highlighted_text, comment) VALUES (?, ?, ?, ?, ?, ?, ?)",
			record.ID, h.StartIndex, h.EndIndex, h.TextType, h.ErrorType, h.HighlightedText, nullStr(h.Comment),
		)
		if err != nil {
			return fmt.Errorf("failed to insert highlight: %w", err)
		}
	}
	return nil
}

// UpdateStatus changes only the workflow status.
func (r *AnnotationRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE annotations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update annotation status: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("annotation %s", id)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "annotation", id, "status", "", status)
	}
	return nil
}

// SetRecording attaches or replaces the voice recording reference.
func (r *AnnotationRepository) SetRecording(ctx context.Context, id string, url string, durationSeconds *int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE annotations SET voice_recording_url = ?, voice_recording_duration = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		url, nullInt(durationSeconds), id)
	if err != nil {
		return fmt.Errorf("failed to set recording: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("annotation %s", id)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "annotation", id, "voice_recording_url", "", url)
	}
	return nil
}

// Delete removes the annotation; highlights, evaluations and revisions
// cascade at the schema level.
func (r *AnnotationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM annotations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("annotation %s", id)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, "annotation", id)
	}
	return nil
}

// GetNextID returns the next available annotation ID.
func (r *AnnotationRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM annotations",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next annotation ID: %w", err)
	}
	return fmt.Sprintf("ANN-%03d", maxID+1), nil
}

// Ensure AnnotationRepository implements the interface
var _ secondary.AnnotationRepository = (*AnnotationRepository)(nil)
