package span

import (
	"errors"
	"strings"
	"testing"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
)

const sampleText = "How are you? How is your work today?"

func mustAdd(t *testing.T, s *Set, sp Span) {
	t.Helper()
	if err := s.Add(sp); err != nil {
		t.Fatalf("Add(%+v) failed: %v", sp, err)
	}
}

func TestAdd_AcceptsAllInBoundsSpans(t *testing.T) {
	text := "abcdef"
	for start := 0; start < len(text); start++ {
		for end := start + 1; end <= len(text); end++ {
			s := NewSet(text)
			err := s.Add(Span{Start: start, End: end, ErrorType: MinorSemantic})
			if err != nil {
				t.Errorf("Add(start=%d, end=%d) rejected: %v", start, end, err)
			}
		}
	}
}

func TestAdd_RejectsOutOfBoundsSpans(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 3},
		{"end past text", 0, len(sampleText) + 1},
		{"start equals end", 5, 5},
		{"start after end", 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet(sampleText)
			err := s.Add(Span{Start: tt.start, End: tt.end, ErrorType: MinorSemantic})
			if !errors.Is(err, errs.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAdd_RejectsUnknownErrorType(t *testing.T) {
	s := NewSet(sampleText)
	err := s.Add(Span{Start: 0, End: 3, ErrorType: "XX_YY"})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAdd_SuppressesDuplicates(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 0, End: 3, ErrorType: MinorSemantic, Comment: "odd"})

	err := s.Add(Span{Start: 0, End: 3, ErrorType: MajorSyntactic, Comment: "odd"})
	if !errors.Is(err, errs.ErrDuplicate) {
		t.Errorf("expected duplicate error for same (start, end, type, comment), got %v", err)
	}

	// Same bounds but a different comment is a distinct span.
	if err := s.Add(Span{Start: 0, End: 3, ErrorType: MinorSemantic, Comment: "other"}); err != nil {
		t.Errorf("distinct comment should be accepted: %v", err)
	}
}

func TestAdd_DerivesHighlightedText(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 13, End: 29, ErrorType: MinorSemantic, Text: "tampered"})
	got := s.Spans()[0].Text
	if got != "How is your work" {
		t.Errorf("expected derived text from base string, got %q", got)
	}
}

func TestCanonicalize_RemovesContainedSpans(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 5, End: 10, ErrorType: MinorSemantic})
	mustAdd(t, s, Span{Start: 0, End: 12, ErrorType: MajorSemantic})
	mustAdd(t, s, Span{Start: 6, End: 9, ErrorType: MinorSyntactic})

	s.Canonicalize()

	spans := s.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span after canonicalize, got %d", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 12 {
		t.Errorf("expected the outer span to survive, got [%d, %d)", spans[0].Start, spans[0].End)
	}
}

func TestCanonicalize_IdenticalBoundsKeepsFirstInserted(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 2, End: 8, ErrorType: MinorSemantic, Comment: "first"})
	mustAdd(t, s, Span{Start: 2, End: 8, ErrorType: MajorSemantic, Comment: "second"})

	s.Canonicalize()

	spans := s.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Comment != "first" {
		t.Errorf("expected first-inserted span to survive, got %q", spans[0].Comment)
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 0, End: 10, ErrorType: MinorSemantic})
	mustAdd(t, s, Span{Start: 3, End: 7, ErrorType: MajorSemantic})
	mustAdd(t, s, Span{Start: 15, End: 20, ErrorType: MinorSyntactic})

	s.Canonicalize()
	once := s.Spans()
	s.Canonicalize()
	twice := s.Spans()

	if len(once) != len(twice) {
		t.Fatalf("canonicalize not idempotent: %d then %d spans", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("span %d changed on second canonicalize: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestCanonicalize_NoContainmentRemains(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 0, End: 10, ErrorType: MinorSemantic})
	mustAdd(t, s, Span{Start: 2, End: 8, ErrorType: MajorSemantic})
	mustAdd(t, s, Span{Start: 5, End: 15, ErrorType: MinorSyntactic})
	mustAdd(t, s, Span{Start: 20, End: 25, ErrorType: MajorSyntactic})

	s.Canonicalize()

	spans := s.Spans()
	for i, a := range spans {
		for j, b := range spans {
			if i == j {
				continue
			}
			if b.Start <= a.Start && a.End <= b.End {
				t.Errorf("span %d [%d, %d) still contained in span %d [%d, %d)",
					i, a.Start, a.End, j, b.Start, b.End)
			}
		}
	}
}

func TestRemoveAt(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 0, End: 3, ErrorType: MinorSemantic})
	mustAdd(t, s, Span{Start: 4, End: 7, ErrorType: MajorSemantic})

	if err := s.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if s.Len() != 1 || s.Spans()[0].Start != 4 {
		t.Errorf("expected only the second span to remain")
	}
	if err := s.RemoveAt(5); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected not-found for out-of-range index, got %v", err)
	}
}

func TestRender_EmptySet(t *testing.T) {
	s := NewSet(sampleText)
	segs := s.Render()
	if len(segs) != 1 {
		t.Fatalf("expected exactly one segment, got %d", len(segs))
	}
	if segs[0].Kind != SegmentPlain || segs[0].Text != sampleText {
		t.Errorf("expected one plain segment equal to the text, got %+v", segs[0])
	}
}

func TestRender_SingleSpan(t *testing.T) {
	s := NewSet(sampleText)
	mustAdd(t, s, Span{Start: 13, End: 29, ErrorType: MinorSemantic, Comment: "word choice"})

	segs := s.Render()
	want := []Segment{
		{Kind: SegmentPlain, Text: "How are you? "},
		{Kind: SegmentSpan, Text: "How is your work", ErrorType: MinorSemantic, Comment: "word choice"},
		{Kind: SegmentPlain, Text: " today?"},
	}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(segs), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], segs[i])
		}
	}
}

func TestRender_OverlapTruncatesLaterSpan(t *testing.T) {
	text := "0123456789"
	s := NewSet(text)
	mustAdd(t, s, Span{Start: 0, End: 6, ErrorType: MinorSemantic, Comment: "a"})
	mustAdd(t, s, Span{Start: 4, End: 9, ErrorType: MajorSemantic, Comment: "b"})

	segs := s.Render()
	want := []Segment{
		{Kind: SegmentSpan, Text: "012345", ErrorType: MinorSemantic, Comment: "a"},
		{Kind: SegmentSpan, Text: "678", ErrorType: MajorSemantic, Comment: "b"},
		{Kind: SegmentPlain, Text: "9"},
	}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(segs), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], segs[i])
		}
	}
}

func TestRender_FullyShadowedSpanDisappears(t *testing.T) {
	// Partial overlap where the later span would be truncated to
	// nothing stays invisible but loses no text.
	text := "0123456789"
	s := NewSet(text)
	mustAdd(t, s, Span{Start: 2, End: 8, ErrorType: MinorSemantic})
	mustAdd(t, s, Span{Start: 2, End: 5, ErrorType: MajorSemantic, Comment: "nested"})

	segs := s.Render()
	var rebuilt strings.Builder
	spanCount := 0
	for _, seg := range segs {
		rebuilt.WriteString(seg.Text)
		if seg.Kind == SegmentSpan {
			spanCount++
		}
	}
	if spanCount != 1 {
		t.Errorf("contained span should be canonicalized away, got %d span segments", spanCount)
	}
	if rebuilt.String() != text {
		t.Errorf("text not preserved: %q", rebuilt.String())
	}
}

func TestRender_TextPreservationLaw(t *testing.T) {
	cases := [][]Span{
		{},
		{{Start: 0, End: 36, ErrorType: MinorSemantic}},
		{{Start: 5, End: 12, ErrorType: MinorSemantic}, {Start: 8, End: 20, ErrorType: MajorSemantic}},
		{{Start: 0, End: 4, ErrorType: MinorSyntactic}, {Start: 4, End: 8, ErrorType: MajorSyntactic}, {Start: 2, End: 30, ErrorType: MinorSemantic}},
		{{Start: 13, End: 36, ErrorType: MajorSemantic}, {Start: 0, End: 12, ErrorType: MinorSemantic}},
	}
	for i, spans := range cases {
		s := NewSet(sampleText)
		for _, sp := range spans {
			mustAdd(t, s, sp)
		}
		var rebuilt strings.Builder
		for _, seg := range s.Render() {
			rebuilt.WriteString(seg.Text)
		}
		if rebuilt.String() != sampleText {
			t.Errorf("case %d: segments do not reconstruct the text: %q", i, rebuilt.String())
		}
	}
}

func TestRender_StableTieBreakOnEqualStarts(t *testing.T) {
	text := "abcdefghij"
	s := NewSet(text)
	mustAdd(t, s, Span{Start: 2, End: 6, ErrorType: MinorSemantic, Comment: "first"})
	mustAdd(t, s, Span{Start: 2, End: 9, ErrorType: MajorSemantic, Comment: "second"})

	// Neither contains... the second contains the first, so only the
	// wider, later-inserted span should render.
	segs := s.Render()
	var spanSegs []Segment
	for _, seg := range segs {
		if seg.Kind == SegmentSpan {
			spanSegs = append(spanSegs, seg)
		}
	}
	if len(spanSegs) != 1 || spanSegs[0].Comment != "second" {
		t.Fatalf("expected the containing span to render alone, got %+v", spanSegs)
	}
}

func TestErrorTypeLabels(t *testing.T) {
	if !MinorSemantic.Valid() || ErrorType("nope").Valid() {
		t.Error("ErrorType.Valid misclassifies")
	}
	if MajorSyntactic.Label() != "Major Syntactic Error" {
		t.Errorf("unexpected label %q", MajorSyntactic.Label())
	}
}
