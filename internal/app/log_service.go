package app

import (
	"context"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	logRepo secondary.ActivityLogRepository
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.ActivityLogRepository) *LogServiceImpl {
	return &LogServiceImpl{logRepo: logRepo}
}

// ListLogs returns audit trail entries matching the filters, newest first.
func (s *LogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	records, err := s.logRepo.List(ctx, secondary.ActivityLogFilters{
		ActorID:    filters.ActorID,
		EntityType: filters.EntityType,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.LogEntry{
			ID:         r.ID,
			ActorID:    r.ActorID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			FieldName:  r.FieldName,
			OldValue:   r.OldValue,
			NewValue:   r.NewValue,
			Timestamp:  r.CreatedAt,
		}
	}
	return entries, nil
}

var _ primary.LogService = (*LogServiceImpl)(nil)
