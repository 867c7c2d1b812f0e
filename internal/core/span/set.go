package span

import (
	"github.com/wimarka-uic/lakra-sub002/internal/errs"
)

// Set maintains a consistent, renderable collection of spans over one
// fixed base text. Insertion order is preserved; sorting is a
// render-time concern.
type Set struct {
	text  string
	spans []Span
}

// NewSet creates an empty span set over the given immutable base text.
func NewSet(text string) *Set {
	return &Set{text: text}
}

// Text returns the immutable base text the set was built over.
func (s *Set) Text() string {
	return s.text
}

// Len returns the number of spans in the set.
func (s *Set) Len() int {
	return len(s.spans)
}

// Spans returns a copy of the spans in insertion order.
func (s *Set) Spans() []Span {
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// Add validates the span against the base text and appends it.
// A span whose (start, end, text type, comment) tuple already exists
// in the set is rejected as a duplicate. The highlighted text is
// always derived from the base text, never trusted from the caller.
func (s *Set) Add(sp Span) error {
	if sp.TextType == "" {
		sp.TextType = TextTypeMachine
	}
	if err := sp.Validate(len(s.text)); err != nil {
		return err
	}
	for _, existing := range s.spans {
		if existing.Start == sp.Start && existing.End == sp.End &&
			existing.TextType == sp.TextType && existing.Comment == sp.Comment {
			return errs.Duplicatef("span [%d, %d) with the same comment", sp.Start, sp.End)
		}
	}
	sp.Text = s.text[sp.Start:sp.End]
	s.spans = append(s.spans, sp)
	return nil
}

// RemoveAt removes the span at the given insertion-order position.
func (s *Set) RemoveAt(i int) error {
	if i < 0 || i >= len(s.spans) {
		return errs.NotFoundf("span index %d (set holds %d spans)", i, len(s.spans))
	}
	s.spans = append(s.spans[:i], s.spans[i+1:]...)
	return nil
}

// Canonicalize removes every span that is fully contained within
// another span in the set, eliminating redundant nested highlights.
// When two spans share identical bounds the first-inserted one is
// kept. Idempotent; O(n²) over the span count, which stays small in
// practice (tens of spans per sentence).
func (s *Set) Canonicalize() {
	orig := s.Spans()
	kept := s.spans[:0]
	for i, sp := range orig {
		contained := false
		for j, other := range orig {
			if i == j || !other.contains(sp) {
				continue
			}
			// Identical bounds: only an earlier-inserted twin subsumes.
			if other.Start == sp.Start && other.End == sp.End && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, sp)
		}
	}
	s.spans = kept
}
