package primary

import (
	"context"

	"github.com/wimarka-uic/lakra-sub002/internal/core/revision"
)

// Revision is the caller-facing view of one ledger entry. Snapshot is
// nil for approvals.
type Revision struct {
	ID           string
	AnnotationID string
	EvaluatorID  string
	RevisionType string
	Notes        string
	Reason       string
	Snapshot     *revision.Snapshot
	Seq          int64
	CreatedAt    string
}

// ApproveRequest records an evaluator's approval. Notes are optional.
type ApproveRequest struct {
	AnnotationID string `validate:"required"`
	EvaluatorID  string `validate:"required"`
	Notes        string
}

// ReviseRequest records an evaluator's revision. Notes and Reason are
// mandatory; the remaining fields follow UpdateAnnotationRequest
// semantics (nil leaves the annotator's value in place, and the merged
// result is what gets snapshotted and stored).
type ReviseRequest struct {
	AnnotationID   string `validate:"required"`
	EvaluatorID    string `validate:"required"`
	Notes          string `validate:"required"`
	Reason         string `validate:"required"`
	FluencyScore   *int   `validate:"omitempty,min=1,max=5"`
	AdequacyScore  *int   `validate:"omitempty,min=1,max=5"`
	OverallQuality *int   `validate:"omitempty,min=1,max=5"`
	Comments       *string
	FinalForm      *string
	Highlights     *[]HighlightInput
}

// RevisionService defines the primary port for evaluator review
// operations over the append-only revision ledger.
type RevisionService interface {
	// Approve appends an approve entry and marks the annotation reviewed.
	Approve(ctx context.Context, req ApproveRequest) (*Revision, error)

	// Revise applies the evaluator's field changes, stores the full
	// snapshot in a revise entry, and marks the annotation reviewed.
	Revise(ctx context.Context, req ReviseRequest) (*Revision, error)

	// ListRevisions returns the ledger for one annotation in commit order.
	ListRevisions(ctx context.Context, annotationID string) ([]*Revision, error)

	// LatestRevision returns the most recent entry, or nil when none exist.
	LatestRevision(ctx context.Context, annotationID string) (*Revision, error)

	// ReviewQueue lists completed annotations awaiting evaluator review.
	ReviewQueue(ctx context.Context) ([]*Annotation, error)
}
