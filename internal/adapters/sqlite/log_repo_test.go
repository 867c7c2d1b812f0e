package sqlite_test

import (
	"context"
	"testing"

	"github.com/wimarka-uic/lakra-sub002/internal/adapters/sqlite"
	"github.com/wimarka-uic/lakra-sub002/internal/ctxutil"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

func TestActivityLogRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityLogRepository(db)
	ctx := context.Background()

	entries := []*secondary.ActivityLogRecord{
		{ID: "LOG-001", ActorID: "USER-001", EntityType: "annotation", EntityID: "ANN-001", Action: "create"},
		{ID: "LOG-002", ActorID: "USER-001", EntityType: "annotation", EntityID: "ANN-001", Action: "update", FieldName: "status", NewValue: "completed"},
		{ID: "LOG-003", ActorID: "USER-002", EntityType: "revision", EntityID: "REV-001", Action: "create"},
	}
	for _, e := range entries {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("failed to create log entry: %v", err)
		}
	}

	all, err := repo.List(ctx, secondary.ActivityLogFilters{})
	if err != nil {
		t.Fatalf("failed to list log entries: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	// Newest first; same-second inserts fall back to ID order.
	if all[0].ID != "LOG-003" {
		t.Errorf("expected LOG-003 first, got %s", all[0].ID)
	}
	if all[1].FieldName != "status" || all[1].NewValue != "completed" {
		t.Errorf("field change not preserved: %+v", all[1])
	}

	byActor, err := repo.List(ctx, secondary.ActivityLogFilters{ActorID: "USER-002"})
	if err != nil {
		t.Fatalf("failed to filter by actor: %v", err)
	}
	if len(byActor) != 1 || byActor[0].ID != "LOG-003" {
		t.Errorf("expected only LOG-003 for USER-002, got %d entries", len(byActor))
	}

	byType, err := repo.List(ctx, secondary.ActivityLogFilters{EntityType: "annotation", Limit: 1})
	if err != nil {
		t.Fatalf("failed to filter by type: %v", err)
	}
	if len(byType) != 1 || byType[0].ID != "LOG-002" {
		t.Errorf("expected LOG-002 with limit 1, got %+v", byType)
	}
}

func TestActivityLogRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityLogRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("failed to get next ID: %v", err)
	}
	if id != "LOG-001" {
		t.Errorf("expected LOG-001 on empty table, got %s", id)
	}

	if err := repo.Create(ctx, &secondary.ActivityLogRecord{
		ID: "LOG-009", ActorID: "USER-001", EntityType: "annotation", EntityID: "ANN-001", Action: "create",
	}); err != nil {
		t.Fatalf("failed to create log entry: %v", err)
	}

	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("failed to get next ID: %v", err)
	}
	if id != "LOG-010" {
		t.Errorf("expected LOG-010, got %s", id)
	}
}

func TestLogWriterAdapter_WritesActorFromContext(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(repo)

	ctx := ctxutil.WithActorID(context.Background(), "USER-003")
	if err := writer.LogCreate(ctx, "annotation", "ANN-001"); err != nil {
		t.Fatalf("failed to log create: %v", err)
	}
	if err := writer.LogUpdate(ctx, "annotation", "ANN-001", "status", "in_progress", "completed"); err != nil {
		t.Fatalf("failed to log update: %v", err)
	}

	entries, err := repo.List(ctx, secondary.ActivityLogFilters{})
	if err != nil {
		t.Fatalf("failed to list log entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ActorID != "USER-003" || entries[0].Action != "update" {
		t.Errorf("unexpected newest entry: %+v", entries[0])
	}
	if entries[0].OldValue != "in_progress" || entries[0].NewValue != "completed" {
		t.Errorf("status change not recorded: %+v", entries[0])
	}
}

func TestLogWriterAdapter_SkipsWithoutActor(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(repo)
	ctx := context.Background()

	if err := writer.LogDelete(ctx, "annotation", "ANN-001"); err != nil {
		t.Fatalf("expected no-actor delete to be skipped, got %v", err)
	}

	entries, err := repo.List(ctx, secondary.ActivityLogFilters{})
	if err != nil {
		t.Fatalf("failed to list log entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries without an acting user, got %d", len(entries))
	}
}

func TestAnnotationRepository_AuditTrail(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "USER-001", "", "")
	seedSentence(t, db, "SENT-001", "")

	logRepo := sqlite.NewActivityLogRepository(db)
	repo := sqlite.NewAnnotationRepository(db, sqlite.NewLogWriterAdapter(logRepo))
	ctx := ctxutil.WithActorID(context.Background(), "USER-001")

	if err := repo.Create(ctx, &secondary.AnnotationRecord{
		ID: "ANN-001", SentenceID: "SENT-001", AnnotatorID: "USER-001",
	}); err != nil {
		t.Fatalf("failed to create annotation: %v", err)
	}
	if err := repo.UpdateStatus(ctx, "ANN-001", "completed"); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	entries, err := logRepo.List(ctx, secondary.ActivityLogFilters{EntityType: "annotation"})
	if err != nil {
		t.Fatalf("failed to list log entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Action != "update" || entries[0].NewValue != "completed" {
		t.Errorf("unexpected newest entry: %+v", entries[0])
	}
	if entries[1].Action != "create" || entries[1].EntityID != "ANN-001" {
		t.Errorf("unexpected oldest entry: %+v", entries[1])
	}
}
