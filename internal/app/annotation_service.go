package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wimarka-uic/lakra-sub002/internal/core/annotation"
	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// AnnotationServiceImpl implements the AnnotationService interface.
type AnnotationServiceImpl struct {
	annotationRepo secondary.AnnotationRepository
	sentenceRepo   secondary.SentenceRepository
}

// NewAnnotationService creates a new AnnotationService with injected
// dependencies.
func NewAnnotationService(
	annotationRepo secondary.AnnotationRepository,
	sentenceRepo secondary.SentenceRepository,
) *AnnotationServiceImpl {
	return &AnnotationServiceImpl{
		annotationRepo: annotationRepo,
		sentenceRepo:   sentenceRepo,
	}
}

// CreateAnnotation starts a new annotation for a sentence, or reports
// the existing one for the same (sentence, annotator) pair. The
// duplicate check here is advisory; the storage unique constraint is
// authoritative, so a concurrent create that slips past the check
// still resolves to already_exists instead of a second record.
func (s *AnnotationServiceImpl) CreateAnnotation(ctx context.Context, req primary.CreateAnnotationRequest) (*primary.CreateAnnotationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	sentence, err := s.sentenceRepo.GetByID(ctx, req.SentenceID)
	if err != nil {
		return nil, err
	}
	if !sentence.IsActive {
		return nil, errs.Conflictf("sentence %s is retired from the annotation queue", sentence.ID)
	}

	existing, err := s.annotationRepo.GetBySentenceAndAnnotator(ctx, req.SentenceID, req.AnnotatorID)
	if err == nil {
		return &primary.CreateAnnotationResult{
			Outcome:    primary.OutcomeAlreadyExists,
			Annotation: toAnnotation(existing),
		}, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	nextID, err := s.annotationRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate annotation ID: %w", err)
	}

	record := &secondary.AnnotationRecord{
		ID:          nextID,
		SentenceID:  req.SentenceID,
		AnnotatorID: req.AnnotatorID,
		Status:      string(annotation.InitialStatus()),
	}
	if err := s.annotationRepo.Create(ctx, record); err != nil {
		if errors.Is(err, errs.ErrDuplicate) {
			// Lost the race; the winner's record is the answer.
			winner, getErr := s.annotationRepo.GetBySentenceAndAnnotator(ctx, req.SentenceID, req.AnnotatorID)
			if getErr != nil {
				return nil, getErr
			}
			return &primary.CreateAnnotationResult{
				Outcome:    primary.OutcomeAlreadyExists,
				Annotation: toAnnotation(winner),
			}, nil
		}
		return nil, err
	}

	created, err := s.annotationRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, err
	}
	return &primary.CreateAnnotationResult{
		Outcome:    primary.OutcomeCreated,
		Annotation: toAnnotation(created),
	}, nil
}

// GetAnnotation retrieves an annotation with its highlights.
func (s *AnnotationServiceImpl) GetAnnotation(ctx context.Context, annotationID string) (*primary.Annotation, error) {
	record, err := s.annotationRepo.GetByID(ctx, annotationID)
	if err != nil {
		return nil, err
	}
	return toAnnotation(record), nil
}

// ListAnnotations lists annotations with optional filters.
func (s *AnnotationServiceImpl) ListAnnotations(ctx context.Context, filters primary.AnnotationFilters) ([]*primary.Annotation, error) {
	records, err := s.annotationRepo.List(ctx, secondary.AnnotationFilters{
		SentenceID:  filters.SentenceID,
		AnnotatorID: filters.AnnotatorID,
		Status:      filters.Status,
	})
	if err != nil {
		return nil, err
	}
	annotations := make([]*primary.Annotation, len(records))
	for i, record := range records {
		annotations[i] = toAnnotation(record)
	}
	return annotations, nil
}

// mergeDraftFields applies the request's non-nil fields onto the record.
func mergeDraftFields(record *secondary.AnnotationRecord, fluency, adequacy, overall *int, comments, finalForm *string, timeSpent *int) {
	if fluency != nil {
		record.FluencyScore = fluency
	}
	if adequacy != nil {
		record.AdequacyScore = adequacy
	}
	if overall != nil {
		record.OverallQuality = overall
	}
	if comments != nil {
		record.Comments = *comments
	}
	if finalForm != nil {
		record.FinalForm = *finalForm
	}
	if timeSpent != nil {
		record.TimeSpentSeconds = timeSpent
	}
}

// applyHighlights replaces the record's span rows from caller input,
// validating against the sentence's machine translation.
func (s *AnnotationServiceImpl) applyHighlights(ctx context.Context, record *secondary.AnnotationRecord, inputs []primary.HighlightInput) error {
	sentence, err := s.sentenceRepo.GetByID(ctx, record.SentenceID)
	if err != nil {
		return err
	}
	set, err := buildSpanSet(sentence.MachineTranslation, inputs)
	if err != nil {
		return err
	}
	record.Highlights = highlightRecords(record.ID, set)
	return nil
}

// UpdateAnnotation applies draft edits to an in-progress annotation.
func (s *AnnotationServiceImpl) UpdateAnnotation(ctx context.Context, req primary.UpdateAnnotationRequest) (*primary.Annotation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return nil, err
	}
	if record.AnnotatorID != req.ActorID {
		return nil, errs.Unauthorizedf("%s belongs to %s", record.ID, record.AnnotatorID)
	}
	guard := annotation.CanModify(annotation.ModifyContext{
		AnnotationID: record.ID,
		AnnotatorID:  record.AnnotatorID,
		ActorID:      req.ActorID,
		Status:       annotation.Status(record.Status),
	})
	if !guard.Allowed {
		return nil, errs.Conflictf("%s", guard.Reason)
	}

	mergeDraftFields(record, req.FluencyScore, req.AdequacyScore, req.OverallQuality, req.Comments, req.FinalForm, req.TimeSpentSeconds)
	if req.Highlights != nil {
		if err := s.applyHighlights(ctx, record, *req.Highlights); err != nil {
			return nil, err
		}
	}

	if err := s.annotationRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	updated, err := s.annotationRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toAnnotation(updated), nil
}

// RemoveHighlight drops one span from an in-progress annotation by
// its insertion-order index and rewrites the remaining spans.
func (s *AnnotationServiceImpl) RemoveHighlight(ctx context.Context, req primary.RemoveHighlightRequest) (*primary.Annotation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return nil, err
	}
	if record.AnnotatorID != req.ActorID {
		return nil, errs.Unauthorizedf("%s belongs to %s", record.ID, record.AnnotatorID)
	}
	guard := annotation.CanModify(annotation.ModifyContext{
		AnnotationID: record.ID,
		AnnotatorID:  record.AnnotatorID,
		ActorID:      req.ActorID,
		Status:       annotation.Status(record.Status),
	})
	if !guard.Allowed {
		return nil, errs.Conflictf("%s", guard.Reason)
	}

	sentence, err := s.sentenceRepo.GetByID(ctx, record.SentenceID)
	if err != nil {
		return nil, err
	}
	set, err := setFromRecords(sentence.MachineTranslation, record.Highlights)
	if err != nil {
		return nil, err
	}
	if err := set.RemoveAt(req.Index); err != nil {
		return nil, err
	}
	record.Highlights = highlightRecords(record.ID, set)

	if err := s.annotationRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	updated, err := s.annotationRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toAnnotation(updated), nil
}

// SubmitAnnotation validates scores, merges fields and marks the
// annotation completed.
func (s *AnnotationServiceImpl) SubmitAnnotation(ctx context.Context, req primary.SubmitAnnotationRequest) (*primary.Annotation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return nil, err
	}
	if record.AnnotatorID != req.ActorID {
		return nil, errs.Unauthorizedf("%s belongs to %s", record.ID, record.AnnotatorID)
	}
	guard := annotation.CanModify(annotation.ModifyContext{
		AnnotationID: record.ID,
		AnnotatorID:  record.AnnotatorID,
		ActorID:      req.ActorID,
		Status:       annotation.Status(record.Status),
	})
	if !guard.Allowed {
		return nil, errs.Conflictf("%s", guard.Reason)
	}

	mergeDraftFields(record, req.FluencyScore, req.AdequacyScore, req.OverallQuality, req.Comments, req.FinalForm, req.TimeSpentSeconds)
	if req.Highlights != nil {
		if err := s.applyHighlights(ctx, record, *req.Highlights); err != nil {
			return nil, err
		}
	}

	submitGuard := annotation.CanSubmit(annotation.SubmitContext{
		AnnotationID:   record.ID,
		FluencyScore:   record.FluencyScore,
		AdequacyScore:  record.AdequacyScore,
		OverallQuality: record.OverallQuality,
	})
	if !submitGuard.Allowed {
		return nil, errs.Validationf("%s", submitGuard.Reason)
	}

	transition := annotation.ApplyStatusTransition(annotation.StatusCompleted, time.Now())
	record.Status = string(transition.NewStatus)

	if err := s.annotationRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	updated, err := s.annotationRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toAnnotation(updated), nil
}

// ReopenAnnotation resets a submitted annotation to in_progress for
// further annotator work.
func (s *AnnotationServiceImpl) ReopenAnnotation(ctx context.Context, req primary.ReopenAnnotationRequest) (*primary.Annotation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return nil, err
	}
	if record.AnnotatorID != req.ActorID {
		return nil, errs.Unauthorizedf("%s belongs to %s", record.ID, record.AnnotatorID)
	}
	guard := annotation.CanReopen(annotation.ReopenContext{
		AnnotationID: record.ID,
		Status:       annotation.Status(record.Status),
		Confirmed:    req.Confirmed,
	})
	if !guard.Allowed {
		return nil, errs.Conflictf("%s", guard.Reason)
	}

	if err := s.annotationRepo.UpdateStatus(ctx, record.ID, string(annotation.StatusInProgress)); err != nil {
		return nil, err
	}
	updated, err := s.annotationRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toAnnotation(updated), nil
}

// AttachRecording stores the voice recording reference. The upload
// itself happens out of band; only the owner may attach.
func (s *AnnotationServiceImpl) AttachRecording(ctx context.Context, req primary.AttachRecordingRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return err
	}
	if record.AnnotatorID != req.ActorID {
		return errs.Unauthorizedf("%s belongs to %s", record.ID, record.AnnotatorID)
	}

	return s.annotationRepo.SetRecording(ctx, record.ID, req.URL, req.DurationSeconds)
}

// DeleteAnnotation removes an annotation, cascading spans, evaluations
// and revisions.
func (s *AnnotationServiceImpl) DeleteAnnotation(ctx context.Context, req primary.DeleteAnnotationRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return err
	}
	guard := annotation.CanDelete(annotation.DeleteContext{
		AnnotationID: record.ID,
		AnnotatorID:  record.AnnotatorID,
		ActorID:      req.ActorID,
		ActorRole:    req.ActorRole,
		Confirmed:    req.Confirmed,
	})
	if !guard.Allowed {
		if record.AnnotatorID != req.ActorID && req.ActorRole != "admin" {
			return errs.Unauthorizedf("%s", guard.Reason)
		}
		return errs.Conflictf("%s", guard.Reason)
	}

	return s.annotationRepo.Delete(ctx, record.ID)
}

// RenderAnnotation produces the display segments for an annotation's
// machine translation.
func (s *AnnotationServiceImpl) RenderAnnotation(ctx context.Context, annotationID string) (*primary.RenderedAnnotation, error) {
	record, err := s.annotationRepo.GetByID(ctx, annotationID)
	if err != nil {
		return nil, err
	}
	sentence, err := s.sentenceRepo.GetByID(ctx, record.SentenceID)
	if err != nil {
		return nil, err
	}

	set, err := setFromRecords(sentence.MachineTranslation, record.Highlights)
	if err != nil {
		return nil, fmt.Errorf("stored spans for %s no longer fit their sentence: %w", record.ID, err)
	}

	return &primary.RenderedAnnotation{
		Annotation:         toAnnotation(record),
		MachineTranslation: sentence.MachineTranslation,
		Segments:           set.Render(),
	}, nil
}

// Ensure AnnotationServiceImpl implements the interface
var _ primary.AnnotationService = (*AnnotationServiceImpl)(nil)
