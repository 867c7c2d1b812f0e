package app

import (
	"context"
	"fmt"

	"github.com/wimarka-uic/lakra-sub002/internal/core/annotation"
	"github.com/wimarka-uic/lakra-sub002/internal/core/revision"
	"github.com/wimarka-uic/lakra-sub002/internal/core/span"
	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// RevisionServiceImpl implements the RevisionService interface over
// the append-only revision ledger.
type RevisionServiceImpl struct {
	revisionRepo   secondary.RevisionRepository
	annotationRepo secondary.AnnotationRepository
	sentenceRepo   secondary.SentenceRepository
}

// NewRevisionService creates a new RevisionService with injected
// dependencies.
func NewRevisionService(
	revisionRepo secondary.RevisionRepository,
	annotationRepo secondary.AnnotationRepository,
	sentenceRepo secondary.SentenceRepository,
) *RevisionServiceImpl {
	return &RevisionServiceImpl{
		revisionRepo:   revisionRepo,
		annotationRepo: annotationRepo,
		sentenceRepo:   sentenceRepo,
	}
}

func toRevision(record *secondary.RevisionRecord) (*primary.Revision, error) {
	rev := &primary.Revision{
		ID:           record.ID,
		AnnotationID: record.AnnotationID,
		EvaluatorID:  record.EvaluatorID,
		RevisionType: record.RevisionType,
		Notes:        record.RevisionNotes,
		Reason:       record.RevisionReason,
		Seq:          record.Seq,
		CreatedAt:    record.CreatedAt,
	}
	if record.RevisedSnapshot != "" {
		snap, err := revision.UnmarshalSnapshot(record.RevisedSnapshot)
		if err != nil {
			return nil, fmt.Errorf("ledger entry %s: %w", record.ID, err)
		}
		rev.Snapshot = snap
	}
	return rev, nil
}

// Approve appends an approve entry and marks the annotation reviewed.
func (s *RevisionServiceImpl) Approve(ctx context.Context, req primary.ApproveRequest) (*primary.Revision, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return nil, err
	}
	guard := annotation.CanApprove(annotation.ReviewContext{
		AnnotationID: record.ID,
		Status:       annotation.Status(record.Status),
	})
	if !guard.Allowed {
		return nil, errs.Conflictf("%s", guard.Reason)
	}

	decision := revision.Approve(req.Notes)
	if err := decision.Validate(); err != nil {
		return nil, err
	}

	nextID, err := s.revisionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate revision ID: %w", err)
	}
	entry := &secondary.RevisionRecord{
		ID:            nextID,
		AnnotationID:  record.ID,
		EvaluatorID:   req.EvaluatorID,
		RevisionType:  string(decision.Kind),
		RevisionNotes: decision.Notes,
	}
	if err := s.revisionRepo.AppendApproval(ctx, entry); err != nil {
		return nil, err
	}
	return toRevision(entry)
}

// Revise applies the evaluator's field changes over the annotator's
// values, stores the merged snapshot in a revise entry, and marks the
// annotation reviewed. Entry, field writes and status flip land in one
// transaction at the repository.
func (s *RevisionServiceImpl) Revise(ctx context.Context, req primary.ReviseRequest) (*primary.Revision, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return nil, err
	}
	guard := annotation.CanRevise(annotation.ReviseContext{
		AnnotationID: record.ID,
		Status:       annotation.Status(record.Status),
		Notes:        req.Notes,
		Reason:       req.Reason,
	})
	if !guard.Allowed {
		return nil, errs.Conflictf("%s", guard.Reason)
	}

	mergeDraftFields(record, req.FluencyScore, req.AdequacyScore, req.OverallQuality, req.Comments, req.FinalForm, nil)
	sentence, err := s.sentenceRepo.GetByID(ctx, record.SentenceID)
	if err != nil {
		return nil, err
	}
	var set *span.Set
	if req.Highlights != nil {
		set, err = buildSpanSet(sentence.MachineTranslation, *req.Highlights)
	} else {
		set, err = setFromRecords(sentence.MachineTranslation, record.Highlights)
	}
	if err != nil {
		return nil, err
	}

	snap := revision.Snapshot{
		FluencyScore:   record.FluencyScore,
		AdequacyScore:  record.AdequacyScore,
		OverallQuality: record.OverallQuality,
		Comments:       record.Comments,
		FinalForm:      record.FinalForm,
		Spans:          revision.SnapshotFromSet(set),
	}
	decision := revision.Revise(snap, req.Notes, req.Reason)
	if err := decision.Validate(); err != nil {
		return nil, err
	}
	// The row the repository persists is derived from the snapshot, not
	// the other way around, so the ledger alone can rebuild the record.
	ReplaySnapshot(record, decision.Snapshot)
	encoded, err := decision.Snapshot.Marshal()
	if err != nil {
		return nil, err
	}

	nextID, err := s.revisionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate revision ID: %w", err)
	}
	entry := &secondary.RevisionRecord{
		ID:              nextID,
		AnnotationID:    record.ID,
		EvaluatorID:     req.EvaluatorID,
		RevisionType:    string(decision.Kind),
		RevisedSnapshot: encoded,
		RevisionNotes:   decision.Notes,
		RevisionReason:  decision.Reason,
	}
	if err := s.revisionRepo.AppendRevision(ctx, entry, record); err != nil {
		return nil, err
	}
	return toRevision(entry)
}

// ReplaySnapshot applies a revise snapshot onto an annotation record,
// overwriting every field the snapshot captures. Replaying the latest
// ledger snapshot onto a blank copy of the record reconstructs the
// annotation exactly as the evaluator left it.
func ReplaySnapshot(record *secondary.AnnotationRecord, snap *revision.Snapshot) {
	record.FluencyScore = snap.FluencyScore
	record.AdequacyScore = snap.AdequacyScore
	record.OverallQuality = snap.OverallQuality
	record.Comments = snap.Comments
	record.FinalForm = snap.FinalForm
	record.Highlights = make([]secondary.HighlightRecord, len(snap.Spans))
	for i, sp := range snap.Spans {
		record.Highlights[i] = secondary.HighlightRecord{
			AnnotationID:    record.ID,
			StartIndex:      sp.StartIndex,
			EndIndex:        sp.EndIndex,
			TextType:        sp.TextType,
			ErrorType:       sp.ErrorType,
			HighlightedText: sp.HighlightedText,
			Comment:         sp.Comment,
		}
	}
}

// ListRevisions returns the ledger for one annotation in commit order.
func (s *RevisionServiceImpl) ListRevisions(ctx context.Context, annotationID string) ([]*primary.Revision, error) {
	if _, err := s.annotationRepo.GetByID(ctx, annotationID); err != nil {
		return nil, err
	}
	records, err := s.revisionRepo.ListByAnnotation(ctx, annotationID)
	if err != nil {
		return nil, err
	}
	revisions := make([]*primary.Revision, len(records))
	for i, record := range records {
		rev, err := toRevision(record)
		if err != nil {
			return nil, err
		}
		revisions[i] = rev
	}
	return revisions, nil
}

// LatestRevision returns the most recent ledger entry, or nil when
// none exist.
func (s *RevisionServiceImpl) LatestRevision(ctx context.Context, annotationID string) (*primary.Revision, error) {
	if _, err := s.annotationRepo.GetByID(ctx, annotationID); err != nil {
		return nil, err
	}
	record, err := s.revisionRepo.Latest(ctx, annotationID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return toRevision(record)
}

// ReviewQueue lists completed annotations awaiting evaluator review.
func (s *RevisionServiceImpl) ReviewQueue(ctx context.Context) ([]*primary.Annotation, error) {
	records, err := s.annotationRepo.List(ctx, secondary.AnnotationFilters{
		Status: string(annotation.StatusCompleted),
	})
	if err != nil {
		return nil, err
	}
	queue := make([]*primary.Annotation, len(records))
	for i, record := range records {
		queue[i] = toAnnotation(record)
	}
	return queue, nil
}

// Ensure RevisionServiceImpl implements the interface
var _ primary.RevisionService = (*RevisionServiceImpl)(nil)
