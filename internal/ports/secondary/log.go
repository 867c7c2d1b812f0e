package secondary

import "context"

// ActivityLogRecord is one audit trail entry as stored in persistence.
type ActivityLogRecord struct {
	ID         string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// ActivityLogFilters narrows activity log listings.
type ActivityLogFilters struct {
	ActorID    string
	EntityType string
	Limit      int
}

// ActivityLogRepository defines the secondary port for audit trail
// persistence.
type ActivityLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, entry *ActivityLogRecord) error

	// List returns entries matching the filters, newest first.
	List(ctx context.Context, filters ActivityLogFilters) ([]*ActivityLogRecord, error)

	// GetNextID generates the next log ID (e.g. "LOG-001").
	GetNextID(ctx context.Context) (string, error)
}

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the actor from context; entries without an
// acting user are skipped.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogDelete logs a delete operation for an entity.
	LogDelete(ctx context.Context, entityType, entityID string) error
}
