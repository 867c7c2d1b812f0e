// Package primary defines the driving ports: service interfaces and
// the request/response types callers exchange with them. Struct tags
// on request types drive go-playground/validator in the services.
package primary

import "context"

// Sentence is the caller-facing view of one sentence pair.
type Sentence struct {
	ID                 string
	SourceText         string
	MachineTranslation string
	SourceLanguage     string
	TargetLanguage     string
	Domain             string
	IsActive           bool
	CreatedAt          string
}

// SentenceImport is one entry of a bulk import file.
type SentenceImport struct {
	SourceText         string `json:"source_text" validate:"required"`
	MachineTranslation string `json:"machine_translation" validate:"required"`
	SourceLanguage     string `json:"source_language" validate:"required"`
	TargetLanguage     string `json:"target_language" validate:"required"`
	Domain             string `json:"domain"`
}

// ImportSentencesRequest contains parameters for a bulk import.
type ImportSentencesRequest struct {
	ActorID   string           `validate:"required"`
	ActorRole string           `validate:"required,oneof=admin"`
	Sentences []SentenceImport `validate:"required,min=1,dive"`
}

// ImportSentencesResponse reports the import outcome.
type ImportSentencesResponse struct {
	Imported    int
	SentenceIDs []string
}

// SentenceFilters narrows sentence listings.
type SentenceFilters struct {
	SourceLanguage string
	TargetLanguage string
	Domain         string
	ActiveOnly     bool
}

// SentenceService defines the primary port for sentence operations.
type SentenceService interface {
	// ImportSentences bulk-inserts sentences from an import payload.
	ImportSentences(ctx context.Context, req ImportSentencesRequest) (*ImportSentencesResponse, error)

	// GetSentence retrieves a sentence by ID.
	GetSentence(ctx context.Context, sentenceID string) (*Sentence, error)

	// ListSentences lists sentences with optional filters.
	ListSentences(ctx context.Context, filters SentenceFilters) ([]*Sentence, error)

	// DeactivateSentence retires a sentence from the annotation queue.
	DeactivateSentence(ctx context.Context, sentenceID string) error

	// NextForAnnotation returns the first active sentence the annotator
	// has not yet worked on, or nil when the queue is empty.
	NextForAnnotation(ctx context.Context, annotatorID string) (*Sentence, error)
}
