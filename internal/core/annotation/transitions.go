// Package annotation contains the pure business logic for annotation
// workflow operations. This is part of the Functional Core - no I/O,
// only pure functions.
package annotation

import "time"

// Status represents the lifecycle stage of one annotator's work on one
// sentence.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusReviewed   Status = "reviewed"
)

// Valid reports whether the status is a known lifecycle stage.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusReviewed:
		return true
	}
	return false
}

// InitialStatus returns the status for a newly created annotation.
func InitialStatus() Status {
	return StatusInProgress
}

// ScoreMin and ScoreMax bound the 1-5 quality rating scale shared by
// fluency, adequacy and overall quality.
const (
	ScoreMin = 1
	ScoreMax = 5
)

// ValidScore reports whether a score is on the rating scale.
func ValidScore(n int) bool {
	return n >= ScoreMin && n <= ScoreMax
}

// TransitionResult captures a status change together with its side
// effects on record timestamps.
type TransitionResult struct {
	NewStatus Status
	UpdatedAt time.Time
}

// ApplyStatusTransition applies a status change and returns the result.
// The caller passes the current time to keep the function testable.
func ApplyStatusTransition(newStatus Status, now time.Time) TransitionResult {
	return TransitionResult{
		NewStatus: newStatus,
		UpdatedAt: now,
	}
}
