package app

import (
	"context"
	"fmt"

	"github.com/wimarka-uic/lakra-sub002/internal/core/annotation"
	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// EvaluationServiceImpl implements the EvaluationService interface.
// This is the read-only scoring path; evaluators who want to change
// the annotation itself go through the revision ledger instead.
type EvaluationServiceImpl struct {
	evaluationRepo secondary.EvaluationRepository
	annotationRepo secondary.AnnotationRepository
}

// NewEvaluationService creates a new EvaluationService with injected
// dependencies.
func NewEvaluationService(
	evaluationRepo secondary.EvaluationRepository,
	annotationRepo secondary.AnnotationRepository,
) *EvaluationServiceImpl {
	return &EvaluationServiceImpl{
		evaluationRepo: evaluationRepo,
		annotationRepo: annotationRepo,
	}
}

// CreateEvaluation records a new evaluation of a completed annotation.
func (s *EvaluationServiceImpl) CreateEvaluation(ctx context.Context, req primary.CreateEvaluationRequest) (*primary.Evaluation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.annotationRepo.GetByID(ctx, req.AnnotationID)
	if err != nil {
		return nil, err
	}
	if annotation.Status(record.Status) == annotation.StatusInProgress {
		return nil, errs.Conflictf("%s is still in progress; only submitted work can be evaluated", record.ID)
	}

	nextID, err := s.evaluationRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate evaluation ID: %w", err)
	}
	evaluation := &secondary.EvaluationRecord{
		ID:                     nextID,
		AnnotationID:           req.AnnotationID,
		EvaluatorID:            req.EvaluatorID,
		AnnotationQualityScore: req.AnnotationQualityScore,
		AccuracyScore:          req.AccuracyScore,
		CompletenessScore:      req.CompletenessScore,
		OverallEvaluationScore: req.OverallEvaluationScore,
		Feedback:               req.Feedback,
		EvaluationNotes:        req.EvaluationNotes,
		TimeSpentSeconds:       req.TimeSpentSeconds,
		Status:                 "in_progress",
	}
	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		return nil, err
	}

	created, err := s.evaluationRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, err
	}
	return toEvaluation(created), nil
}

// GetEvaluation retrieves an evaluation by ID.
func (s *EvaluationServiceImpl) GetEvaluation(ctx context.Context, evaluationID string) (*primary.Evaluation, error) {
	record, err := s.evaluationRepo.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	return toEvaluation(record), nil
}

// UpdateEvaluation amends an evaluator's own evaluation.
func (s *EvaluationServiceImpl) UpdateEvaluation(ctx context.Context, req primary.UpdateEvaluationRequest) (*primary.Evaluation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := s.evaluationRepo.GetByID(ctx, req.EvaluationID)
	if err != nil {
		return nil, err
	}
	if record.EvaluatorID != req.EvaluatorID {
		return nil, errs.Unauthorizedf("%s belongs to %s", record.ID, record.EvaluatorID)
	}

	if req.AnnotationQualityScore != nil {
		record.AnnotationQualityScore = req.AnnotationQualityScore
	}
	if req.AccuracyScore != nil {
		record.AccuracyScore = req.AccuracyScore
	}
	if req.CompletenessScore != nil {
		record.CompletenessScore = req.CompletenessScore
	}
	if req.OverallEvaluationScore != nil {
		record.OverallEvaluationScore = req.OverallEvaluationScore
	}
	if req.Feedback != nil {
		record.Feedback = *req.Feedback
	}
	if req.EvaluationNotes != nil {
		record.EvaluationNotes = *req.EvaluationNotes
	}
	if req.Status != nil {
		record.Status = *req.Status
	}

	if err := s.evaluationRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	updated, err := s.evaluationRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toEvaluation(updated), nil
}

// ListEvaluationsForAnnotation lists evaluations of one annotation.
func (s *EvaluationServiceImpl) ListEvaluationsForAnnotation(ctx context.Context, annotationID string) ([]*primary.Evaluation, error) {
	records, err := s.evaluationRepo.ListByAnnotation(ctx, annotationID)
	if err != nil {
		return nil, err
	}
	evaluations := make([]*primary.Evaluation, len(records))
	for i, record := range records {
		evaluations[i] = toEvaluation(record)
	}
	return evaluations, nil
}

// EvaluatorSummary aggregates counts and averages for one evaluator.
func (s *EvaluationServiceImpl) EvaluatorSummary(ctx context.Context, evaluatorID string) (*primary.EvaluatorSummary, error) {
	summary, err := s.evaluationRepo.SummaryForEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}
	return &primary.EvaluatorSummary{
		EvaluatorID:    evaluatorID,
		Total:          summary.Total,
		Completed:      summary.Completed,
		AverageOverall: summary.AverageOverall,
	}, nil
}

// Ensure EvaluationServiceImpl implements the interface
var _ primary.EvaluationService = (*EvaluationServiceImpl)(nil)
