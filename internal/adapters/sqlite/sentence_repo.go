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

// SentenceRepository implements secondary.SentenceRepository with SQLite.
type SentenceRepository struct {
	db *sql.DB
}

// NewSentenceRepository creates a new SQLite sentence repository.
func NewSentenceRepository(db *sql.DB) *SentenceRepository {
	return &SentenceRepository{db: db}
}

const sentenceColumns = "id, source_text, machine_translation, source_language, target_language, domain, is_active, created_at"

func scanSentence(scan func(dest ...any) error) (*secondary.SentenceRecord, error) {
	var (
		domain    sql.NullString
		createdAt time.Time
	)
	record := &secondary.SentenceRecord{}
	err := scan(&record.ID, &record.SourceText, &record.MachineTranslation,
		&record.SourceLanguage, &record.TargetLanguage, &domain, &record.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}
	record.Domain = domain.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new sentence.
func (r *SentenceRepository) Create(ctx context.Context, sentence *secondary.SentenceRecord) error {
	var domain sql.NullString
	if sentence.Domain != "" {
		domain = sql.NullString{String: sentence.Domain, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sentences (id, source_text, machine_translation, source_language, target_language, domain, is_active) VALUES (?, ?, ?, ?, ?, ?, 1)",
		sentence.ID, sentence.SourceText, sentence.MachineTranslation,
		sentence.SourceLanguage, sentence.TargetLanguage, domain,
	)
	if err != nil {
		return fmt.Errorf("failed to create sentence: %w", err)
	}
	return nil
}

// CreateBatch persists imported sentences in one transaction.
func (r *SentenceRepository) CreateBatch(ctx context.Context, sentences []*secondary.SentenceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO sentences (id, source_text, machine_translation, source_language, target_language, domain, is_active) VALUES (?, ?, ?, ?, ?, ?, 1)")
	if err != nil {
		return fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range sentences {
		var domain sql.NullString
		if s.Domain != "" {
			domain = sql.NullString{String: s.Domain, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, s.ID, s.SourceText, s.MachineTranslation, s.SourceLanguage, s.TargetLanguage, domain); err != nil {
			return fmt.Errorf("failed to import sentence %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// GetByID retrieves a sentence by its ID.
func (r *SentenceRepository) GetByID(ctx context.Context, id string) (*secondary.SentenceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sentenceColumns+" FROM sentences WHERE id = ?", id)
	record, err := scanSentence(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("sentence %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sentence: %w", err)
	}
	return record, nil
}

// List retrieves sentences matching the given filters.
func (r *SentenceRepository) List(ctx context.Context, filters secondary.SentenceFilters) ([]*secondary.SentenceRecord, error) {
	q := sq.Select(sentenceColumns).From("sentences").OrderBy("id")
	if filters.SourceLanguage != "" {
		q = q.Where(sq.Eq{"source_language": filters.SourceLanguage})
	}
	if filters.TargetLanguage != "" {
		q = q.Where(sq.Eq{"target_language": filters.TargetLanguage})
	}
	if filters.Domain != "" {
		q = q.Where(sq.Eq{"domain": filters.Domain})
	}
	if filters.ActiveOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sentence query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sentences: %w", err)
	}
	defer rows.Close()

	var sentences []*secondary.SentenceRecord
	for rows.Next() {
		record, err := scanSentence(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sentence: %w", err)
		}
		sentences = append(sentences, record)
	}
	return sentences, rows.Err()
}

// Deactivate retires a sentence from the annotation queue.
func (r *SentenceRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE sentences SET is_active = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate sentence: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("sentence %s", id)
	}
	return nil
}

// NextUnannotated returns the first active sentence the annotator has
// not yet annotated, or nil when the queue is empty.
func (r *SentenceRepository) NextUnannotated(ctx context.Context, annotatorID string) (*secondary.SentenceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sentenceColumns+` FROM sentences s
		 WHERE s.is_active = 1
		   AND NOT EXISTS (SELECT 1 FROM annotations a WHERE a.sentence_id = s.id AND a.annotator_id = ?)
		 ORDER BY s.id LIMIT 1`,
		annotatorID)
	record, err := scanSentence(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next sentence: %w", err)
	}
	return record, nil
}

// GetNextID returns the next available sentence ID.
func (r *SentenceRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM sentences",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next sentence ID: %w", err)
	}
	return fmt.Sprintf("SENT-%03d", maxID+1), nil
}

// Ensure SentenceRepository implements the interface
var _ secondary.SentenceRepository = (*SentenceRepository)(nil)
