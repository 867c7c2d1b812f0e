package secondary

import "context"

// HighlightRecord is one stored text span owned by an annotation.
// Rows are replaced wholesale with their owning record; they are never
// edited in place.
type HighlightRecord struct {
	ID              int64
	AnnotationID    string
	StartIndex      int
	EndIndex        int
	TextType        string
	ErrorType       string
	HighlightedText string
	Comment         string
	CreatedAt       string
}

// AnnotationRecord is the storage representation of one annotator's
// work on one sentence. Score pointers are nil until the annotator
// sets them.
type AnnotationRecord struct {
	ID                     string
	SentenceID             string
	AnnotatorID            string
	FluencyScore           *int
	AdequacyScore          *int
	OverallQuality         *int
	Comments               string
	FinalForm              string
	VoiceRecordingURL      string
	VoiceRecordingDuration *int
	TimeSpentSeconds       *int
	Status                 string
	CreatedAt              string
	UpdatedAt              string
	Highlights             []HighlightRecord
}

// AnnotationFilters narrows annotation listings.
type AnnotationFilters struct {
	SentenceID  string
	AnnotatorID string
	Status      string
}

// AnnotationRepository persists annotations together with their spans.
// The record and its highlight rows are always written in one
// transaction; there is no state where highlights reference a stale
// record version.
type AnnotationRepository interface {
	// Create persists a new annotation. A second annotation for the
	// same (sentence, annotator) pair fails with errs.ErrDuplicate,
	// enforced by the storage unique constraint rather than a
	// check-then-insert race.
	Create(ctx context.Context, record *AnnotationRecord) error

	// GetByID retrieves an annotation with its highlights.
	GetByID(ctx context.Context, id string) (*AnnotationRecord, error)

	// GetBySentenceAndAnnotator retrieves the unique annotation for the
	// pair, or errs.ErrNotFound.
	GetBySentenceAndAnnotator(ctx context.Context, sentenceID, annotatorID string) (*AnnotationRecord, error)

	// List retrieves annotations (without highlights) matching the filters.
	List(ctx context.Context, filters AnnotationFilters) ([]*AnnotationRecord, error)

	// Update rewrites the record's mutable fields and replaces its
	// highlight rows in one transaction.
	Update(ctx context.Context, record *AnnotationRecord) error

	// UpdateStatus changes only the workflow status.
	UpdateStatus(ctx context.Context, id string, status string) error

	// SetRecording attaches or replaces the voice recording reference,
	// decoupled from annotation field writes.
	SetRecording(ctx context.Context, id string, url string, durationSeconds *int) error

	// Delete removes the annotation; highlights, evaluations and
	// revisions cascade.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available annotation ID.
	GetNextID(ctx context.Context) (string, error)
}
