package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// EvaluationRepository implements secondary.EvaluationRepository with SQLite.
type EvaluationRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewEvaluationRepository creates a new SQLite evaluation repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewEvaluationRepository(db *sql.DB, logWriter secondary.LogWriter) *EvaluationRepository {
	return &EvaluationRepository{db: db, logWriter: logWriter}
}

const evaluationColumns = "id, annotation_id, evaluator_id, annotation_quality_score, accuracy_score, completeness_score, overall_evaluation_score, feedback, evaluation_notes, time_spent_seconds, status, created_at, updated_at"

func scanEvaluation(scan func(dest ...any) error) (*secondary.EvaluationRecord, error) {
	var (
		quality, accuracy, completeness, overall sql.NullInt64
		feedback, notes                          sql.NullString
		timeSpent                                sql.NullInt64
		createdAt, updatedAt                     time.Time
	)
	record := &secondary.EvaluationRecord{}
	err := scan(&record.ID, &record.AnnotationID, &record.EvaluatorID,
		&quality, &accuracy, &completeness, &overall,
		&feedback, &notes, &timeSpent,
		&record.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.AnnotationQualityScore = intPtr(quality)
	record.AccuracyScore = intPtr(accuracy)
	record.CompletenessScore = intPtr(completeness)
	record.OverallEvaluationScore = intPtr(overall)
	record.Feedback = feedback.String
	record.EvaluationNotes = notes.String
	record.TimeSpentSeconds = intPtr(timeSpent)
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new evaluation. The UNIQUE(annotation_id,
// evaluator_id) constraint rejects a second evaluation for the pair.
func (r *EvaluationRepository) Create(ctx context.Context, record *secondary.EvaluationRecord) error {
	status := record.Status
	if status == "" {
		status = "in_progress"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO evaluations (id, annotation_id, evaluator_id, annotation_quality_score, accuracy_score, completeness_score, overall_evaluation_score, feedback, evaluation_notes, time_spent_seconds, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.AnnotationID, record.EvaluatorID,
		nullInt(record.AnnotationQualityScore), nullInt(record.AccuracyScore),
		nullInt(record.CompletenessScore), nullInt(record.OverallEvaluationScore),
		nullStr(record.Feedback), nullStr(record.EvaluationNotes),
		nullInt(record.TimeSpentSeconds), status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Duplicatef("evaluation of %s by evaluator %s", record.AnnotationID, record.EvaluatorID)
		}
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "evaluation", record.ID)
	}
	return nil
}

// GetByID retrieves an evaluation by its ID.
func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (*secondary.EvaluationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+evaluationColumns+" FROM evaluations WHERE id = ?", id)
	record, err := scanEvaluation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("evaluation %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return record, nil
}

// ListByAnnotation retrieves all evaluations of one annotation.
func (r *EvaluationRepository) ListByAnnotation(ctx context.Context, annotationID string) ([]*secondary.EvaluationRecord, error) {
	return r.list(ctx, "annotation_id", annotationID)
}

// ListByEvaluator retrieves all evaluations by one evaluator.
func (r *EvaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID string) ([]*secondary.EvaluationRecord, error) {
	return r.list(ctx, "evaluator_id", evaluatorID)
}

func (r *EvaluationRepository) list(ctx context.Context, column, value string) ([]*secondary.EvaluationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+evaluationColumns+" FROM evaluations WHERE "+column+" = ? ORDER BY created_at DESC, id DESC",
		value)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []*secondary.EvaluationRecord
	for rows.Next() {
		record, err := scanEvaluation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evaluations = append(evaluations, record)
	}
	return evaluations, rows.Err()
}

// Update rewrites the evaluation's scores, feedback and status.
func (r *EvaluationRepository) Update(ctx context.Context, record *secondary.EvaluationRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE evaluations SET
			annotation_quality_score = ?, accuracy_score = ?,
			completeness_score = ?, overall_evaluation_score = ?,
			feedback = ?, evaluation_notes = ?, time_spent_seconds = ?,
			status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		nullInt(record.AnnotationQualityScore), nullInt(record.AccuracyScore),
		nullInt(record.CompletenessScore), nullInt(record.OverallEvaluationScore),
		nullStr(record.Feedback), nullStr(record.EvaluationNotes),
		nullInt(record.TimeSpentSeconds), record.Status, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update evaluation: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("evaluation %s", record.ID)
	}
	return nil
}

// SummaryForEvaluator aggregates counts and the average overall score
// for one evaluator.
func (r *EvaluationRepository) SummaryForEvaluator(ctx context.Context, evaluatorID string) (*secondary.EvaluationSummary, error) {
	summary := &secondary.EvaluationSummary{}
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			AVG(overall_evaluation_score)
		 FROM evaluations WHERE evaluator_id = ?`,
		evaluatorID,
	).Scan(&summary.Total, &summary.Completed, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize evaluations: %w", err)
	}
	summary.AverageOverall = avg.Float64
	return summary, nil
}

// GetNextID returns the next available evaluation ID.
func (r *EvaluationRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM evaluations",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next evaluation ID: %w", err)
	}
	return fmt.Sprintf("EVAL-%03d", maxID+1), nil
}

// Ensure EvaluationRepository implements the interface
var _ secondary.EvaluationRepository = (*EvaluationRepository)(nil)
