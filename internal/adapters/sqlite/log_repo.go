package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// ActivityLogRepository implements secondary.ActivityLogRepository
// with SQLite.
type ActivityLogRepository struct {
	db *sql.DB
}

// NewActivityLogRepository creates a new SQLite activity log repository.
func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

const activityLogColumns = "id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at"

func scanLogEntry(scan func(dest ...any) error) (*secondary.ActivityLogRecord, error) {
	var (
		fieldName sql.NullString
		oldValue  sql.NullString
		newValue  sql.NullString
		createdAt time.Time
	)
	entry := &secondary.ActivityLogRecord{}
	err := scan(&entry.ID, &entry.ActorID, &entry.EntityType, &entry.EntityID,
		&entry.Action, &fieldName, &oldValue, &newValue, &createdAt)
	if err != nil {
		return nil, err
	}
	entry.FieldName = fieldName.String
	entry.OldValue = oldValue.String
	entry.NewValue = newValue.String
	entry.CreatedAt = createdAt.Format(time.RFC3339)
	return entry, nil
}

// Create persists a new log entry.
func (r *ActivityLogRepository) Create(ctx context.Context, entry *secondary.ActivityLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO activity_log (id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.ActorID, entry.EntityType, entry.EntityID,
		entry.Action, nullStr(entry.FieldName), nullStr(entry.OldValue), nullStr(entry.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}
	return nil
}

// List returns entries matching the filters, newest first.
func (r *ActivityLogRepository) List(ctx context.Context, filters secondary.ActivityLogFilters) ([]*secondary.ActivityLogRecord, error) {
	builder := sq.Select(activityLogColumns).
		From("activity_log").
		OrderBy("created_at DESC", "id DESC")

	if filters.ActorID != "" {
		builder = builder.Where(sq.Eq{"actor_id": filters.ActorID})
	}
	if filters.EntityType != "" {
		builder = builder.Where(sq.Eq{"entity_type": filters.EntityType})
	}
	if filters.Limit > 0 {
		builder = builder.Limit(uint64(filters.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build log query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ActivityLogRecord
	for rows.Next() {
		entry, err := scanLogEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetNextID generates the next log ID.
func (r *ActivityLogRepository) GetNextID(ctx context.Context) (string, error) {
	var maxNum sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT MAX(CAST(SUBSTR(id, 5) AS INTEGER)) FROM activity_log WHERE id LIKE 'LOG-%'",
	).Scan(&maxNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next log ID: %w", err)
	}
	return fmt.Sprintf("LOG-%03d", maxNum.Int64+1), nil
}

var _ secondary.ActivityLogRepository = (*ActivityLogRepository)(nil)
