package span

import "sort"

// SegmentKind distinguishes plain text from highlighted text.
type SegmentKind string

const (
	SegmentPlain SegmentKind = "plain"
	SegmentSpan  SegmentKind = "span"
)

// Segment is one piece of the rendered base text. Only span segments
// carry an error type and comment.
type Segment struct {
	Kind      SegmentKind
	Text      string
	ErrorType ErrorType
	Comment   string
}

// Render splits the base text into an ordered list of segments.
//
// The canonicalized spans are sorted by start position (stable, so
// identical starts keep insertion order) and consumed left to right
// with a cursor. When two spans partially overlap, the span that
// starts earlier is rendered in full and the later span is truncated
// to begin at the cursor; a span truncated to nothing is dropped.
// This earliest-start-wins rule reproduces the behavior of the
// original highlight renderer rather than compositing overlapping
// regions (see DESIGN.md).
//
// The concatenation of all segment texts always equals the base text.
func (s *Set) Render() []Segment {
	if len(s.spans) == 0 {
		return []Segment{{Kind: SegmentPlain, Text: s.text}}
	}

	canon := *s
	canon.spans = s.Spans()
	canon.Canonicalize()

	ordered := canon.spans
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	var segments []Segment
	cursor := 0
	for _, sp := range ordered {
		if sp.Start > cursor {
			segments = append(segments, Segment{
				Kind: SegmentPlain,
				Text: s.text[cursor:sp.Start],
			})
			cursor = sp.Start
		}
		start := sp.Start
		if cursor > start {
			start = cursor
		}
		end := sp.End
		if end > len(s.text) {
			end = len(s.text)
		}
		if end > start {
			segments = append(segments, Segment{
				Kind:      SegmentSpan,
				Text:      s.text[start:end],
				ErrorType: sp.ErrorType,
				Comment:   sp.Comment,
			})
		}
		if sp.End > cursor {
			cursor = sp.End
		}
	}
	if cursor < len(s.text) {
		segments = append(segments, Segment{
			Kind: SegmentPlain,
			Text: s.text[cursor:],
		})
	}
	return segments
}
