package sqlite

import (
	"context"

	"github.com/wimarka-uic/lakra-sub002/internal/ctxutil"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using
// ActivityLogRepository. The actor comes from the request context;
// operations without an acting user are not logged.
type LogWriterAdapter struct {
	logRepo secondary.ActivityLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.ActivityLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "create", "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "delete", "", "", "")
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	actorID := ctxutil.ActorFromContext(ctx)
	if actorID == "" {
		return nil
	}

	id, err := w.logRepo.GetNextID(ctx)
	if err != nil {
		return err
	}

	return w.logRepo.Create(ctx, &secondary.ActivityLogRecord{
		ID:         id,
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
