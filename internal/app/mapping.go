package app

import (
	"github.com/wimarka-uic/lakra-sub002/internal/core/span"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

func toSentence(record *secondary.SentenceRecord) *primary.Sentence {
	return &primary.Sentence{
		ID:                 record.ID,
		SourceText:         record.SourceText,
		MachineTranslation: record.MachineTranslation,
		SourceLanguage:     record.SourceLanguage,
		TargetLanguage:     record.TargetLanguage,
		Domain:             record.Domain,
		IsActive:           record.IsActive,
		CreatedAt:          record.CreatedAt,
	}
}

func toAnnotation(record *secondary.AnnotationRecord) *primary.Annotation {
	a := &primary.Annotation{
		ID:                     record.ID,
		SentenceID:             record.SentenceID,
		AnnotatorID:            record.AnnotatorID,
		FluencyScore:           record.FluencyScore,
		AdequacyScore:          record.AdequacyScore,
		OverallQuality:         record.OverallQuality,
		Comments:               record.Comments,
		FinalForm:              record.FinalForm,
		VoiceRecordingURL:      record.VoiceRecordingURL,
		VoiceRecordingDuration: record.VoiceRecordingDuration,
		TimeSpentSeconds:       record.TimeSpentSeconds,
		Status:                 record.Status,
		CreatedAt:              record.CreatedAt,
		UpdatedAt:              record.UpdatedAt,
	}
	for _, h := range record.Highlights {
		a.Highlights = append(a.Highlights, primary.Highlight{
			StartIndex:      h.StartIndex,
			EndIndex:        h.EndIndex,
			TextType:        h.TextType,
			ErrorType:       h.ErrorType,
			ErrorLabel:      span.ErrorType(h.ErrorType).Label(),
			HighlightedText: h.HighlightedText,
			Comment:         h.Comment,
		})
	}
	return a
}

func toEvaluation(record *secondary.EvaluationRecord) *primary.Evaluation {
	return &primary.Evaluation{
		ID:                     record.ID,
		AnnotationID:           record.AnnotationID,
		EvaluatorID:            record.EvaluatorID,
		AnnotationQualityScore: record.AnnotationQualityScore,
		AccuracyScore:          record.AccuracyScore,
		CompletenessScore:      record.CompletenessScore,
		OverallEvaluationScore: record.OverallEvaluationScore,
		Feedback:               record.Feedback,
		EvaluationNotes:        record.EvaluationNotes,
		TimeSpentSeconds:       record.TimeSpentSeconds,
		Status:                 record.Status,
		CreatedAt:              record.CreatedAt,
		UpdatedAt:              record.UpdatedAt,
	}
}

// buildSpanSet validates the caller's spans against the machine
// translation and returns the canonical set. Each span is checked for
// bounds, error type and duplicates; containment collapses afterwards.
func buildSpanSet(machineTranslation string, inputs []primary.HighlightInput) (*span.Set, error) {
	set := span.NewSet(machineTranslation)
	for _, in := range inputs {
		err := set.Add(span.Span{
			Start:     in.StartIndex,
			End:       in.EndIndex,
			TextType:  span.TextTypeMachine,
			ErrorType: span.ErrorType(in.ErrorType),
			Comment:   in.Comment,
		})
		if err != nil {
			return nil, err
		}
	}
	set.Canonicalize()
	return set, nil
}

// highlightRecords converts a canonical span set to storage rows for
// the given annotation.
func highlightRecords(annotationID string, set *span.Set) []secondary.HighlightRecord {
	spans := set.Spans()
	records := make([]secondary.HighlightRecord, len(spans))
	for i, sp := range spans {
		records[i] = secondary.HighlightRecord{
			AnnotationID:    annotationID,
			StartIndex:      sp.Start,
			EndIndex:        sp.End,
			TextType:        sp.TextType,
			ErrorType:       string(sp.ErrorType),
			HighlightedText: sp.Text,
			Comment:         sp.Comment,
		}
	}
	return records
}

// setFromRecords rebuilds the span set of a stored annotation for
// rendering. Stored rows already passed validation on the way in.
func setFromRecords(machineTranslation string, highlights []secondary.HighlightRecord) (*span.Set, error) {
	set := span.NewSet(machineTranslation)
	for _, h := range highlights {
		err := set.Add(span.Span{
			Start:     h.StartIndex,
			End:       h.EndIndex,
			TextType:  h.TextType,
			ErrorType: span.ErrorType(h.ErrorType),
			Comment:   h.Comment,
		})
		if err != nil {
			return nil, err
		}
	}
	return set, nil
}
