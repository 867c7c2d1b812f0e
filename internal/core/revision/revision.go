// Package revision contains the pure model for evaluator decisions on
// an annotation. A revision is immutable once created; the ledger of
// revisions is the audit trail for one annotation.
package revision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wimarka-uic/lakra-sub002/internal/core/span"
	"github.com/wimarka-uic/lakra-sub002/internal/errs"
)

// Kind tags the two evaluator decisions.
type Kind string

const (
	KindApprove Kind = "approve"
	KindRevise  Kind = "revise"
)

// Valid reports whether the kind is a known decision.
func (k Kind) Valid() bool {
	return k == KindApprove || k == KindRevise
}

// SnapshotSpan is one highlight inside a revision snapshot. The JSON
// field names match the persisted text_highlights columns so a stored
// snapshot reads the same as the live rows it replaced.
type SnapshotSpan struct {
	StartIndex      int    `json:"start_index"`
	EndIndex        int    `json:"end_index"`
	TextType        string `json:"text_type"`
	ErrorType       string `json:"error_type"`
	HighlightedText string `json:"highlighted_text"`
	Comment         string `json:"comment,omitempty"`
}

// Snapshot is the complete set of mutable annotation fields at
// decision time. Replaying a snapshot onto a blank record fully
// reconstructs the annotation as the evaluator left it.
type Snapshot struct {
	FluencyScore   *int           `json:"fluency_score"`
	AdequacyScore  *int           `json:"adequacy_score"`
	OverallQuality *int           `json:"overall_quality"`
	Comments       string         `json:"comments,omitempty"`
	FinalForm      string         `json:"final_form,omitempty"`
	Spans          []SnapshotSpan `json:"highlights"`
}

// SnapshotFromSet converts a span set to snapshot form.
func SnapshotFromSet(set *span.Set) []SnapshotSpan {
	spans := set.Spans()
	out := make([]SnapshotSpan, len(spans))
	for i, sp := range spans {
		out[i] = SnapshotSpan{
			StartIndex:      sp.Start,
			EndIndex:        sp.End,
			TextType:        sp.TextType,
			ErrorType:       string(sp.ErrorType),
			HighlightedText: sp.Text,
			Comment:         sp.Comment,
		}
	}
	return out
}

// RestoreSet rebuilds the span set a snapshot was taken from, validated
// against the machine translation it annotates. Inverse of
// SnapshotFromSet up to canonical ordering.
func RestoreSet(machineTranslation string, spans []SnapshotSpan) (*span.Set, error) {
	set := span.NewSet(machineTranslation)
	for _, sp := range spans {
		err := set.Add(span.Span{
			Start:     sp.StartIndex,
			End:       sp.EndIndex,
			TextType:  sp.TextType,
			ErrorType: span.ErrorType(sp.ErrorType),
			Comment:   sp.Comment,
		})
		if err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Marshal encodes the snapshot for the revised_snapshot column.
func (s Snapshot) Marshal() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal revision snapshot: %w", err)
	}
	return string(data), nil
}

// UnmarshalSnapshot decodes a stored revised_snapshot value.
func UnmarshalSnapshot(data string) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal revision snapshot: %w", err)
	}
	return &s, nil
}

// Revision is a tagged evaluator decision. The snapshot and reason are
// only present for the revise kind; the type-level split replaces the
// original system's partial-record-of-any-shape payload.
type Revision struct {
	Kind     Kind
	Notes    string
	Reason   string    // revise only
	Snapshot *Snapshot // revise only
}

// Approve builds an approval decision. Notes are optional.
func Approve(notes string) Revision {
	return Revision{Kind: KindApprove, Notes: notes}
}

// Revise builds a revision decision carrying the full field snapshot.
func Revise(snap Snapshot, notes, reason string) Revision {
	return Revision{Kind: KindRevise, Notes: notes, Reason: reason, Snapshot: &snap}
}

// Validate enforces per-kind completeness.
func (r Revision) Validate() error {
	switch r.Kind {
	case KindApprove:
		if r.Snapshot != nil {
			return errs.Validationf("an approval carries no field changes")
		}
		return nil
	case KindRevise:
		if strings.TrimSpace(r.Notes) == "" {
			return errs.Validationf("revision notes are required")
		}
		if strings.TrimSpace(r.Reason) == "" {
			return errs.Validationf("revision reason is required")
		}
		if r.Snapshot == nil {
			return errs.Validationf("a revision must carry the revised field snapshot")
		}
		return nil
	}
	return errs.Validationf("unknown revision type %q", r.Kind)
}
