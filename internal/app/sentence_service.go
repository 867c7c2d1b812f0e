package app

import (
	"context"
	"fmt"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// SentenceServiceImpl implements the SentenceService interface.
type SentenceServiceImpl struct {
	sentenceRepo secondary.SentenceRepository
}

// NewSentenceService creates a new SentenceService with injected
// dependencies.
func NewSentenceService(sentenceRepo secondary.SentenceRepository) *SentenceServiceImpl {
	return &SentenceServiceImpl{sentenceRepo: sentenceRepo}
}

// ImportSentences bulk-inserts sentences from an import payload. Only
// admins import; the role check runs on the request tag.
func (s *SentenceServiceImpl) ImportSentences(ctx context.Context, req primary.ImportSentencesRequest) (*primary.ImportSentencesResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// One NextID round trip, then number the batch locally so IDs stay
	// dense within the import.
	firstID, err := s.sentenceRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sentence ID: %w", err)
	}
	var start int
	if _, err := fmt.Sscanf(firstID, "SENT-%d", &start); err != nil {
		return nil, fmt.Errorf("unexpected sentence ID format %q: %w", firstID, err)
	}

	records := make([]*secondary.SentenceRecord, len(req.Sentences))
	ids := make([]string, len(req.Sentences))
	for i, in := range req.Sentences {
		id := fmt.Sprintf("SENT-%03d", start+i)
		records[i] = &secondary.SentenceRecord{
			ID:                 id,
			SourceText:         in.SourceText,
			MachineTranslation: in.MachineTranslation,
			SourceLanguage:     in.SourceLanguage,
			TargetLanguage:     in.TargetLanguage,
			Domain:             in.Domain,
			IsActive:           true,
		}
		ids[i] = id
	}

	if err := s.sentenceRepo.CreateBatch(ctx, records); err != nil {
		return nil, err
	}
	return &primary.ImportSentencesResponse{
		Imported:    len(records),
		SentenceIDs: ids,
	}, nil
}

// GetSentence retrieves a sentence by ID.
func (s *SentenceServiceImpl) GetSentence(ctx context.Context, sentenceID string) (*primary.Sentence, error) {
	record, err := s.sentenceRepo.GetByID(ctx, sentenceID)
	if err != nil {
		return nil, err
	}
	return toSentence(record), nil
}

// ListSentences lists sentences with optional filters.
func (s *SentenceServiceImpl) ListSentences(ctx context.Context, filters primary.SentenceFilters) ([]*primary.Sentence, error) {
	records, err := s.sentenceRepo.List(ctx, secondary.SentenceFilters{
		SourceLanguage: filters.SourceLanguage,
		TargetLanguage: filters.TargetLanguage,
		Domain:         filters.Domain,
		ActiveOnly:     filters.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	sentences := make([]*primary.Sentence, len(records))
	for i, record := range records {
		sentences[i] = toSentence(record)
	}
	return sentences, nil
}

// DeactivateSentence retires a sentence from the annotation queue.
// Existing annotations keep their referent.
func (s *SentenceServiceImpl) DeactivateSentence(ctx context.Context, sentenceID string) error {
	return s.sentenceRepo.Deactivate(ctx, sentenceID)
}

// NextForAnnotation returns the first active sentence the annotator
// has not yet worked on, or nil when the queue is empty.
func (s *SentenceServiceImpl) NextForAnnotation(ctx context.Context, annotatorID string) (*primary.Sentence, error) {
	record, err := s.sentenceRepo.NextUnannotated(ctx, annotatorID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return toSentence(record), nil
}

// Ensure SentenceServiceImpl implements the interface
var _ primary.SentenceService = (*SentenceServiceImpl)(nil)
