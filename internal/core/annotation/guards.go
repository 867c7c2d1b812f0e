package annotation

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// allowed is the zero-friction success result.
var allowed = GuardResult{Allowed: true}

// SubmitContext provides context for submission guards.
// Score pointers are nil when the annotator never set them.
type SubmitContext struct {
	AnnotationID   string
	FluencyScore   *int
	AdequacyScore  *int
	OverallQuality *int
}

// CanSubmit evaluates whether an annotation can be submitted as completed.
// Rules:
// - Fluency, adequacy and overall quality must all be present
// - Each score must be on the 1-5 scale
func CanSubmit(ctx SubmitContext) GuardResult {
	scores := []struct {
		name  string
		value *int
	}{
		{"fluency score", ctx.FluencyScore},
		{"adequacy score", ctx.AdequacyScore},
		{"overall quality", ctx.OverallQuality},
	}
	for _, s := range scores {
		if s.value == nil {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("%s is required before submitting %s", s.name, ctx.AnnotationID),
			}
		}
		if !ValidScore(*s.value) {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("%s must be between %d and %d (got %d)", s.name, ScoreMin, ScoreMax, *s.value),
			}
		}
	}
	return allowed
}

// ReviewContext provides context for evaluator review guards.
type ReviewContext struct {
	AnnotationID string
	Status       Status
}

// CanApprove evaluates whether an evaluator can approve an annotation.
// Rule: only completed annotations are in the review queue.
func CanApprove(ctx ReviewContext) GuardResult {
	if ctx.Status != StatusCompleted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("can only approve completed annotations (%s is %s)", ctx.AnnotationID, ctx.Status),
		}
	}
	return allowed
}

// ReviseContext provides context for evaluator revision guards.
type ReviseContext struct {
	AnnotationID string
	Status       Status
	Notes        string
	Reason       string
}

// CanRevise evaluates whether an evaluator can revise an annotation.
// Rules:
// - Status must be completed or reviewed (a reviewed record may be
//   revised again; each pass appends to the ledger)
// - Revision notes and reason are both mandatory
func CanRevise(ctx ReviseContext) GuardResult {
	if ctx.Status != StatusCompleted && ctx.Status != StatusReviewed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("can only revise completed or reviewed annotations (%s is %s)", ctx.AnnotationID, ctx.Status),
		}
	}
	if strings.TrimSpace(ctx.Notes) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "revision notes are required",
		}
	}
	if strings.TrimSpace(ctx.Reason) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "revision reason is required",
		}
	}
	return allowed
}

// ReopenContext provides context for annotator re-edit guards.
type ReopenContext struct {
	AnnotationID string
	Status       Status
	Confirmed    bool
}

// CanReopen evaluates whether an annotator may reopen a submitted
// annotation for further editing.
// Rules:
// - Only completed or reviewed annotations can be reopened
// - The annotator must explicitly confirm, since reopening resets the
//   record to in_progress and it leaves the review queue
func CanReopen(ctx ReopenContext) GuardResult {
	if ctx.Status == StatusInProgress {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is already in progress", ctx.AnnotationID),
		}
	}
	if !ctx.Confirmed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("reopening %s resets it to in_progress; pass confirmation to proceed", ctx.AnnotationID),
		}
	}
	return allowed
}

// ModifyContext provides context for draft-edit guards.
type ModifyContext struct {
	AnnotationID string
	AnnotatorID  string
	ActorID      string
	Status       Status
}

// CanModify evaluates whether the actor may edit annotation fields.
// Rules:
// - Only the owning annotator edits their record
// - Edits are only legal while the record is in_progress; submitted
//   work changes through evaluator revision or an explicit reopen
func CanModify(ctx ModifyContext) GuardResult {
	if ctx.ActorID != ctx.AnnotatorID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s belongs to %s, not %s", ctx.AnnotationID, ctx.AnnotatorID, ctx.ActorID),
		}
	}
	if ctx.Status != StatusInProgress {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is %s; reopen it before editing", ctx.AnnotationID, ctx.Status),
		}
	}
	return allowed
}

// DeleteContext provides context for deletion guards.
type DeleteContext struct {
	AnnotationID string
	AnnotatorID  string
	ActorID      string
	ActorRole    string
	Confirmed    bool
}

// CanDelete evaluates whether the actor may delete an annotation.
// Rules:
// - The owning annotator or an admin may delete
// - Deletion cascades spans, evaluations and revisions, so it must be
//   confirmed explicitly
func CanDelete(ctx DeleteContext) GuardResult {
	if ctx.ActorID != ctx.AnnotatorID && ctx.ActorRole != "admin" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s belongs to %s; only the owner or an admin can delete it", ctx.AnnotationID, ctx.AnnotatorID),
		}
	}
	if !ctx.Confirmed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("deleting %s removes its spans, evaluations and revision history; pass confirmation to proceed", ctx.AnnotationID),
		}
	}
	return allowed
}
