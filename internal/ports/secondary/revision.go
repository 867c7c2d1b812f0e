package secondary

import "context"

// RevisionRecord is one immutable ledger entry: an evaluator's
// approve or revise decision at a point in time. RevisedSnapshot is
// the JSON field snapshot for revise entries and empty for approvals.
// Seq is assigned at commit time and orders entries that share a
// created_at timestamp.
type RevisionRecord struct {
	ID              string
	AnnotationID    string
	EvaluatorID     string
	RevisionType    string
	RevisedSnapshot string
	RevisionNotes   string
	RevisionReason  string
	Seq             int64
	CreatedAt       string
}

// RevisionRepository is the append-only ledger. No method mutates or
// removes an existing entry; the audit-trail contract depends on it.
//
// The Append* methods write the ledger entry and the annotation's
// state change in a single transaction, because an entry that exists
// without its status flip (or the reverse) would lie about history.
type RevisionRepository interface {
	// AppendApproval inserts an approve entry and marks the annotation
	// reviewed.
	AppendApproval(ctx context.Context, rev *RevisionRecord) error

	// AppendRevision inserts a revise entry, rewrites the annotation's
	// mutable fields, replaces its highlights, and marks it reviewed.
	AppendRevision(ctx context.Context, rev *RevisionRecord, record *AnnotationRecord) error

	// ListByAnnotation returns all entries for an annotation ordered by
	// created_at ascending, seq ascending.
	ListByAnnotation(ctx context.Context, annotationID string) ([]*RevisionRecord, error)

	// Latest returns the most recent entry for an annotation, or nil
	// when the ledger is empty for it.
	Latest(ctx context.Context, annotationID string) (*RevisionRecord, error)

	// GetNextID returns the next available revision ID.
	GetNextID(ctx context.Context) (string, error)
}
