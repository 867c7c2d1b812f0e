package primary

import (
	"context"

	"github.com/wimarka-uic/lakra-sub002/internal/core/span"
)

// Highlight is the caller-facing view of one stored span.
type Highlight struct {
	StartIndex      int
	EndIndex        int
	TextType        string
	ErrorType       string
	ErrorLabel      string
	HighlightedText string
	Comment         string
}

// HighlightInput is one span supplied by a caller. Bounds are byte
// offsets into the sentence's machine translation.
type HighlightInput struct {
	StartIndex int    `validate:"min=0"`
	EndIndex   int    `validate:"gtfield=StartIndex"`
	ErrorType  string `validate:"required,oneof=MI_ST MI_SE MA_ST MA_SE"`
	Comment    string
}

// Annotation is the caller-facing view of one annotation record.
type Annotation struct {
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
	Highlights             []Highlight
}

// CreateOutcome discriminates the two legal results of a create call,
// so callers never need a check-then-act round trip.
type CreateOutcome string

const (
	OutcomeCreated       CreateOutcome = "created"
	OutcomeAlreadyExists CreateOutcome = "already_exists"
)

// CreateAnnotationRequest contains parameters for creating an annotation.
type CreateAnnotationRequest struct {
	SentenceID  string `validate:"required"`
	AnnotatorID string `validate:"required"`
}

// CreateAnnotationResult reports either the new record or the existing
// one for the same (sentence, annotator) pair.
type CreateAnnotationResult struct {
	Outcome    CreateOutcome
	Annotation *Annotation
}

// UpdateAnnotationRequest contains draft edits. Nil pointers leave the
// corresponding field untouched; a non-nil Highlights slice replaces
// the span set wholesale.
type UpdateAnnotationRequest struct {
	AnnotationID     string `validate:"required"`
	ActorID          string `validate:"required"`
	FluencyScore     *int   `validate:"omitempty,min=1,max=5"`
	AdequacyScore    *int   `validate:"omitempty,min=1,max=5"`
	OverallQuality   *int   `validate:"omitempty,min=1,max=5"`
	Comments         *string
	FinalForm        *string
	TimeSpentSeconds *int `validate:"omitempty,min=0"`
	Highlights       *[]HighlightInput
}

// SubmitAnnotationRequest finalizes an annotation. Score fields left
// nil fall back to the draft record's values; the submission guard
// requires all three to be present on the merged record.
type SubmitAnnotationRequest struct {
	AnnotationID     string `validate:"required"`
	ActorID          string `validate:"required"`
	FluencyScore     *int   `validate:"omitempty,min=1,max=5"`
	AdequacyScore    *int   `validate:"omitempty,min=1,max=5"`
	OverallQuality   *int   `validate:"omitempty,min=1,max=5"`
	Comments         *string
	FinalForm        *string
	TimeSpentSeconds *int `validate:"omitempty,min=0"`
	Highlights       *[]HighlightInput
}

// RemoveHighlightRequest drops one span from an annotation by its
// display position (0-based insertion order).
type RemoveHighlightRequest struct {
	AnnotationID string `validate:"required"`
	ActorID      string `validate:"required"`
	Index        int    `validate:"min=0"`
}

// ReopenAnnotationRequest returns a submitted annotation to the
// annotator for further work. Confirmed must be set explicitly.
type ReopenAnnotationRequest struct {
	AnnotationID string `validate:"required"`
	ActorID      string `validate:"required"`
	Confirmed    bool
}

// AttachRecordingRequest stores the voice recording reference after an
// out-of-band upload.
type AttachRecordingRequest struct {
	AnnotationID    string `validate:"required"`
	ActorID         string `validate:"required"`
	URL             string `validate:"required"`
	DurationSeconds *int   `validate:"omitempty,min=0"`
}

// DeleteAnnotationRequest removes an annotation and everything that
// hangs off it.
type DeleteAnnotationRequest struct {
	AnnotationID string `validate:"required"`
	ActorID      string `validate:"required"`
	ActorRole    string `validate:"required"`
	Confirmed    bool
}

// RenderedAnnotation pairs an annotation with the display segments of
// its machine translation.
type RenderedAnnotation struct {
	Annotation         *Annotation
	MachineTranslation string
	Segments           []span.Segment
}

// AnnotationFilters narrows annotation listings.
type AnnotationFilters struct {
	SentenceID  string
	AnnotatorID string
	Status      string
}

// AnnotationService defines the primary port for annotator operations.
type AnnotationService interface {
	// CreateAnnotation starts a new annotation for a sentence, or
	// reports the existing one for the same (sentence, annotator) pair.
	CreateAnnotation(ctx context.Context, req CreateAnnotationRequest) (*CreateAnnotationResult, error)

	// GetAnnotation retrieves an annotation with its highlights.
	GetAnnotation(ctx context.Context, annotationID string) (*Annotation, error)

	// ListAnnotations lists annotations with optional filters.
	ListAnnotations(ctx context.Context, filters AnnotationFilters) ([]*Annotation, error)

	// UpdateAnnotation applies draft edits to an in-progress annotation.
	UpdateAnnotation(ctx context.Context, req UpdateAnnotationRequest) (*Annotation, error)

	// RemoveHighlight drops one span by its insertion-order index.
	RemoveHighlight(ctx context.Context, req RemoveHighlightRequest) (*Annotation, error)

	// SubmitAnnotation validates scores, merges fields and marks the
	// annotation completed.
	SubmitAnnotation(ctx context.Context, req SubmitAnnotationRequest) (*Annotation, error)

	// ReopenAnnotation resets a submitted annotation to in_progress for
	// further annotator work.
	ReopenAnnotation(ctx context.Context, req ReopenAnnotationRequest) (*Annotation, error)

	// AttachRecording stores the voice recording reference.
	AttachRecording(ctx context.Context, req AttachRecordingRequest) error

	// DeleteAnnotation removes an annotation, cascading spans,
	// evaluations and revisions.
	DeleteAnnotation(ctx context.Context, req DeleteAnnotationRequest) error

	// RenderAnnotation produces the display segments for an
	// annotation's machine translation.
	RenderAnnotation(ctx context.Context, annotationID string) (*RenderedAnnotation, error)
}
