// Package secondary defines the driven ports: repository interfaces and
// the storage records they exchange. Implementations live in
// internal/adapters.
package secondary

import "context"

// SentenceRecord is the storage representation of one source sentence
// and its machine translation. Sentences are immutable once imported;
// retirement is a soft is_active flip so existing annotations keep a
// valid referent.
type SentenceRecord struct {
	ID                 string
	SourceText         string
	MachineTranslation string
	SourceLanguage     string
	TargetLanguage     string
	Domain             string
	IsActive           bool
	CreatedAt          string
}

// SentenceFilters narrows sentence listings.
type SentenceFilters struct {
	SourceLanguage string
	TargetLanguage string
	Domain         string
	ActiveOnly     bool
}

// SentenceRepository persists sentences.
type SentenceRepository interface {
	// Create persists a new sentence.
	Create(ctx context.Context, sentence *SentenceRecord) error

	// CreateBatch persists a set of imported sentences in one transaction.
	CreateBatch(ctx context.Context, sentences []*SentenceRecord) error

	// GetByID retrieves a sentence by its ID.
	GetByID(ctx context.Context, id string) (*SentenceRecord, error)

	// List retrieves sentences matching the given filters.
	List(ctx context.Context, filters SentenceFilters) ([]*SentenceRecord, error)

	// Deactivate retires a sentence from the annotation queue.
	Deactivate(ctx context.Context, id string) error

	// NextUnannotated returns the first active sentence the given
	// annotator has not yet annotated, or nil when none remain.
	NextUnannotated(ctx context.Context, annotatorID string) (*SentenceRecord, error)

	// GetNextID returns the next available sentence ID.
	GetNextID(ctx context.Context) (string, error)
}
