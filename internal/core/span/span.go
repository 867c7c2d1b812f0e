// Package span contains the pure text-span model for annotation highlights.
// This is part of the Functional Core - no I/O, only pure functions over
// one immutable base string.
package span

import (
	"github.com/wimarka-uic/lakra-sub002/internal/errs"
)

// ErrorType classifies the translation error a span marks.
// Two severities (minor/major) crossed with two categories
// (syntactic/semantic).
type ErrorType string

const (
	MinorSyntactic ErrorType = "MI_ST"
	MinorSemantic  ErrorType = "MI_SE"
	MajorSyntactic ErrorType = "MA_ST"
	MajorSemantic  ErrorType = "MA_SE"
)

// Valid reports whether the error type is one of the four known codes.
func (e ErrorType) Valid() bool {
	switch e {
	case MinorSyntactic, MinorSemantic, MajorSyntactic, MajorSemantic:
		return true
	}
	return false
}

// Label returns the human-readable description of the error type.
func (e ErrorType) Label() string {
	switch e {
	case MinorSyntactic:
		return "Minor Syntactic Error"
	case MinorSemantic:
		return "Minor Semantic Error"
	case MajorSyntactic:
		return "Major Syntactic Error"
	case MajorSemantic:
		return "Major Semantic Error"
	}
	return "Unknown Error Type"
}

// TextTypeMachine is the only text a span may target: the machine
// translation. The column exists so the schema can grow to reference
// texts without a data migration.
const TextTypeMachine = "machine"

// Span is one labeled sub-range of the machine translation.
// Start and End are byte offsets into the base text, half-open [Start, End).
type Span struct {
	Start     int
	End       int
	TextType  string
	ErrorType ErrorType
	Text      string // the highlighted slice of the base text
	Comment   string
}

// Validate checks a span against the base text length.
func (s Span) Validate(textLen int) error {
	if s.Start < 0 || s.End > textLen {
		return errs.Validationf("span [%d, %d) is outside the text bounds [0, %d]", s.Start, s.End, textLen)
	}
	if s.Start >= s.End {
		return errs.Validationf("span start %d must be before end %d", s.Start, s.End)
	}
	if !s.ErrorType.Valid() {
		return errs.Validationf("unknown error type %q", s.ErrorType)
	}
	return nil
}

// contains reports whether s fully contains other.
func (s Span) contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}
