package primary

import "context"

// Evaluation is the caller-facing view of one legacy evaluation record.
type Evaluation struct {
	ID                     string
	AnnotationID           string
	EvaluatorID            string
	AnnotationQualityScore *int
	AccuracyScore          *int
	CompletenessScore      *int
	OverallEvaluationScore *int
	Feedback               string
	EvaluationNotes        string
	TimeSpentSeconds       *int
	Status                 string
	CreatedAt              string
	UpdatedAt              string
}

// CreateEvaluationRequest contains parameters for evaluating an
// annotation without revising it.
type CreateEvaluationRequest struct {
	AnnotationID           string `validate:"required"`
	EvaluatorID            string `validate:"required"`
	AnnotationQualityScore *int   `validate:"omitempty,min=1,max=5"`
	AccuracyScore          *int   `validate:"omitempty,min=1,max=5"`
	CompletenessScore      *int   `validate:"omitempty,min=1,max=5"`
	OverallEvaluationScore *int   `validate:"omitempty,min=1,max=5"`
	Feedback               string
	EvaluationNotes        string
	TimeSpentSeconds       *int `validate:"omitempty,min=0"`
}

// UpdateEvaluationRequest amends an existing evaluation.
type UpdateEvaluationRequest struct {
	EvaluationID           string `validate:"required"`
	EvaluatorID            string `validate:"required"`
	AnnotationQualityScore *int   `validate:"omitempty,min=1,max=5"`
	AccuracyScore          *int   `validate:"omitempty,min=1,max=5"`
	CompletenessScore      *int   `validate:"omitempty,min=1,max=5"`
	OverallEvaluationScore *int   `validate:"omitempty,min=1,max=5"`
	Feedback               *string
	EvaluationNotes        *string
	Status                 *string `validate:"omitempty,oneof=in_progress completed"`
}

// EvaluatorSummary aggregates one evaluator's output.
type EvaluatorSummary struct {
	EvaluatorID    string
	Total          int
	Completed      int
	AverageOverall float64
}

// EvaluationService defines the primary port for the legacy evaluation
// path: scoring an annotator's work without changing it.
type EvaluationService interface {
	// CreateEvaluation records a new evaluation of a completed annotation.
	CreateEvaluation(ctx context.Context, req CreateEvaluationRequest) (*Evaluation, error)

	// GetEvaluation retrieves an evaluation by ID.
	GetEvaluation(ctx context.Context, evaluationID string) (*Evaluation, error)

	// UpdateEvaluation amends an evaluator's own evaluation.
	UpdateEvaluation(ctx context.Context, req UpdateEvaluationRequest) (*Evaluation, error)

	// ListEvaluationsForAnnotation lists evaluations of one annotation.
	ListEvaluationsForAnnotation(ctx context.Context, annotationID string) ([]*Evaluation, error)

	// EvaluatorSummary aggregates counts and averages for one evaluator.
	EvaluatorSummary(ctx context.Context, evaluatorID string) (*EvaluatorSummary, error)
}
