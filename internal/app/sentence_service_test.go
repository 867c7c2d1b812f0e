package app

import (
	"context"
	"errors"
	"testing"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
)

func TestImportSentences(t *testing.T) {
	sentRepo := newMockSentenceRepository()
	svc := NewSentenceService(sentRepo)
	ctx := context.Background()

	resp, err := svc.ImportSentences(ctx, primary.ImportSentencesRequest{
		ActorID:   "USER-001",
		ActorRole: "admin",
		Sentences: []primary.SentenceImport{
			{SourceText: "Kumusta ka?", MachineTranslation: "How are you?", SourceLanguage: "fil", TargetLanguage: "en"},
			{SourceText: "Salamat.", MachineTranslation: "Thank you.", SourceLanguage: "fil", TargetLanguage: "en", Domain: "general"},
		},
	})
	if err != nil {
		t.Fatalf("ImportSentences failed: %v", err)
	}
	if resp.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", resp.Imported)
	}
	if len(resp.SentenceIDs) != 2 || resp.SentenceIDs[0] != "SENT-001" || resp.SentenceIDs[1] != "SENT-002" {
		t.Errorf("unexpected IDs %v", resp.SentenceIDs)
	}

	s, err := svc.GetSentence(ctx, "SENT-002")
	if err != nil {
		t.Fatalf("GetSentence failed: %v", err)
	}
	if s.Domain != "general" || !s.IsActive {
		t.Errorf("unexpected sentence %+v", s)
	}
}

func TestImportSentences_NonAdmin(t *testing.T) {
	svc := NewSentenceService(newMockSentenceRepository())

	_, err := svc.ImportSentences(context.Background(), primary.ImportSentencesRequest{
		ActorID:   "USER-001",
		ActorRole: "annotator",
		Sentences: []primary.SentenceImport{
			{SourceText: "a", MachineTranslation: "b", SourceLanguage: "fil", TargetLanguage: "en"},
		},
	})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation for non-admin import, got %v", err)
	}
}

func TestImportSentences_EmptyPayload(t *testing.T) {
	svc := NewSentenceService(newMockSentenceRepository())

	_, err := svc.ImportSentences(context.Background(), primary.ImportSentencesRequest{
		ActorID:   "USER-001",
		ActorRole: "admin",
	})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation for empty payload, got %v", err)
	}
}

func TestImportSentences_MissingTranslation(t *testing.T) {
	svc := NewSentenceService(newMockSentenceRepository())

	_, err := svc.ImportSentences(context.Background(), primary.ImportSentencesRequest{
		ActorID:   "USER-001",
		ActorRole: "admin",
		Sentences: []primary.SentenceImport{
			{SourceText: "Kumusta ka?", SourceLanguage: "fil", TargetLanguage: "en"},
		},
	})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation for missing translation, got %v", err)
	}
}

func TestListSentences_ActiveOnly(t *testing.T) {
	sentRepo := newMockSentenceRepository()
	svc := NewSentenceService(sentRepo)
	ctx := context.Background()

	seedMockSentence(sentRepo, "SENT-001")
	retired := seedMockSentence(sentRepo, "SENT-002")
	retired.IsActive = false

	active, err := svc.ListSentences(ctx, primary.SentenceFilters{ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListSentences failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "SENT-001" {
		t.Errorf("expected [SENT-001], got %v", active)
	}
}

func TestDeactivateSentence(t *testing.T) {
	sentRepo := newMockSentenceRepository()
	svc := NewSentenceService(sentRepo)
	ctx := context.Background()

	seedMockSentence(sentRepo, "SENT-001")
	if err := svc.DeactivateSentence(ctx, "SENT-001"); err != nil {
		t.Fatalf("DeactivateSentence failed: %v", err)
	}
	s, _ := svc.GetSentence(ctx, "SENT-001")
	if s.IsActive {
		t.Error("expected sentence inactive")
	}

	if err := svc.DeactivateSentence(ctx, "SENT-404"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNextForAnnotation_EmptyQueue(t *testing.T) {
	svc := NewSentenceService(newMockSentenceRepository())

	next, err := svc.NextForAnnotation(context.Background(), "USER-001")
	if err != nil {
		t.Fatalf("NextForAnnotation failed: %v", err)
	}
	if next != nil {
		t.Errorf("expected nil on empty queue, got %v", next)
	}
}
