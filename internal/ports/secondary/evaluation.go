package secondary

import "context"

// EvaluationRecord is the storage representation of the legacy
// evaluation path: one evaluator scoring one annotator's work without
// touching the annotation itself.
type EvaluationRecord struct {
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

// EvaluationSummary aggregates one evaluator's output for dashboards.
type EvaluationSummary struct {
	Total          int
	Completed      int
	AverageOverall float64
}

// EvaluationRepository persists evaluations.
type EvaluationRepository interface {
	// Create persists a new evaluation. A second evaluation for the
	// same (annotation, evaluator) pair fails with errs.ErrDuplicate
	// via the storage unique constraint.
	Create(ctx context.Context, record *EvaluationRecord) error

	// GetByID retrieves an evaluation by its ID.
	GetByID(ctx context.Context, id string) (*EvaluationRecord, error)

	// ListByAnnotation retrieves all evaluations of one annotation.
	ListByAnnotation(ctx context.Context, annotationID string) ([]*EvaluationRecord, error)

	// ListByEvaluator retrieves all evaluations by one evaluator.
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]*EvaluationRecord, error)

	// Update rewrites the evaluation's scores, feedback and status.
	Update(ctx context.Context, record *EvaluationRecord) error

	// SummaryForEvaluator aggregates counts and the average overall
	// score for one evaluator.
	SummaryForEvaluator(ctx context.Context, evaluatorID string) (*EvaluationSummary, error)

	// GetNextID returns the next available evaluation ID.
	GetNextID(ctx context.Context) (string, error)
}
