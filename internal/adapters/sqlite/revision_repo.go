package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// RevisionRepository implements the append-only revision ledger with
// SQLite. Each entry gets a seq number assigned inside the append
// transaction so commit order survives timestamp collisions.
type RevisionRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewRevisionRepository creates a new SQLite revision repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewRevisionRepository(db *sql.DB, logWriter secondary.LogWriter) *RevisionRepository {
	return &RevisionRepository{db: db, logWriter: logWriter}
}

const revisionColumns = "id, annotation_id, evaluator_id, revision_type, revised_snapshot, revision_notes, revision_reason, seq, created_at"

func insertRevisionTx(ctx context.Context, tx *sql.Tx, rev *secondary.RevisionRecord) error {
	var maxSeq int64
	err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) FROM annotation_revisions WHERE annotation_id = ?",
		rev.AnnotationID,
	).Scan(&maxSeq)
	if err != nil {
		return fmt.Errorf("failed to read ledger sequence: %w", err)
	}
	rev.Seq = maxSeq + 1

	_, err = tx.ExecContext(ctx,
		"INSERT INTO annotation_revisions (id, annotation_id, evaluator_id, revision_type, revised_snapshot, revision_notes, revision_reason, seq) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rev.ID, rev.AnnotationID, rev.EvaluatorID, rev.RevisionType,
		nullStr(rev.RevisedSnapshot), nullStr(rev.RevisionNotes), nullStr(rev.RevisionReason), rev.Seq,
	)
	if err != nil {
		return fmt.Errorf("failed to append revision entry: %w", err)
	}
	return nil
}

func markReviewedTx(ctx context.Context, tx *sql.Tx, annotationID string) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE annotations SET status = 'reviewed', updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		annotationID)
	if err != nil {
		return fmt.Errorf("failed to mark annotation reviewed: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("annotation %s", annotationID)
	}
	return nil
}

// AppendApproval inserts an approve entry and marks the annotation
// reviewed, in one transaction.
func (r *RevisionRepository) AppendApproval(ctx context.Context, rev *secondary.RevisionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRevisionTx(ctx, tx, rev); err != nil {
		return err
	}
	if err := markReviewedTx(ctx, tx, rev.AnnotationID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit approval: %w", err)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "revision", rev.ID)
	}
	return nil
}

// AppendRevision inserts a revise entry, rewrites the annotation's
// fields and highlights, and marks it reviewed, all in one
// transaction.
func (r *RevisionRepository) AppendRevision(ctx context.Context, rev *secondary.RevisionRecord, record *secondary.AnnotationRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin revision transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRevisionTx(ctx, tx, rev); err != nil {
		return err
	}
	revised := *record
	revised.Status = "reviewed"
	if err := updateAnnotationTx(ctx, tx, &revised); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit revision: %w", err)
	}
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "revision", rev.ID)
	}
	return nil
}

// ListByAnnotation returns all ledger entries for an annotation in
// commit order.
func (r *RevisionRepository) ListByAnnotation(ctx context.Context, annotationID string) ([]*secondary.RevisionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+revisionColumns+" FROM annotation_revisions WHERE annotation_id = ? ORDER BY created_at ASC, seq ASC",
		annotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*secondary.RevisionRecord
	for rows.Next() {
		rev, err := scanRevision(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// Latest returns the most recent ledger entry for an annotation, or
// nil when none exists.
func (r *RevisionRepository) Latest(ctx context.Context, annotationID string) (*secondary.RevisionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+revisionColumns+" FROM annotation_revisions WHERE annotation_id = ? ORDER BY created_at DESC, seq DESC LIMIT 1",
		annotationID)
	rev, err := scanRevision(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest revision: %w", err)
	}
	return rev, nil
}

func scanRevision(scan func(dest ...any) error) (*secondary.RevisionRecord, error) {
	var (
		snapshot, notes, reason sql.NullString
		createdAt               time.Time
	)
	rev := &secondary.RevisionRecord{}
	err := scan(&rev.ID, &rev.AnnotationID, &rev.EvaluatorID, &rev.RevisionType,
		&snapshot, &notes, &reason, &rev.Seq, &createdAt)
	if err != nil {
		return nil, err
	}
	rev.RevisedSnapshot = snapshot.String
	rev.RevisionNotes = notes.String
	rev.RevisionReason = reason.String
	rev.CreatedAt = createdAt.Format(time.RFC3339)
	return rev, nil
}

// GetNextID returns the next available revision ID.
func (r *RevisionRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM annotation_revisions",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next revision ID: %w", err)
	}
	return fmt.Sprintf("REV-%03d", maxID+1), nil
}

// Ensure RevisionRepository implements the interface
var _ secondary.RevisionRepository = (*RevisionRepository)(nil)
