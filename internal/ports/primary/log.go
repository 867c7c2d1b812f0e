package primary

import "context"

// LogEntry is the caller-facing view of one audit trail entry.
type LogEntry struct {
	ID         string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
	Timestamp  string
}

// LogFilters narrows activity log listings.
type LogFilters struct {
	ActorID    string
	EntityType string
	Limit      int
}

// LogService defines the primary port for reading the audit trail.
type LogService interface {
	// ListLogs returns entries matching the filters, newest first.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)
}
