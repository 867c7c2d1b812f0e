package annotation

import (
	"strings"
	"testing"
)

func intp(n int) *int { return &n }

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name        string
		ctx         SubmitContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name: "all scores present and in range",
			ctx: SubmitContext{
				AnnotationID:   "ANN-001",
				FluencyScore:   intp(4),
				AdequacyScore:  intp(3),
				OverallQuality: intp(4),
			},
			wantAllowed: true,
		},
		{
			name: "missing overall quality",
			ctx: SubmitContext{
				AnnotationID:  "ANN-001",
				FluencyScore:  intp(4),
				AdequacyScore: intp(3),
			},
			wantAllowed: false,
			wantReason:  "overall quality is required",
		},
		{
			name: "missing fluency",
			ctx: SubmitContext{
				AnnotationID:   "ANN-001",
				AdequacyScore:  intp(3),
				OverallQuality: intp(4),
			},
			wantAllowed: false,
			wantReason:  "fluency score is required",
		},
		{
			name: "score above scale",
			ctx: SubmitContext{
				AnnotationID:   "ANN-001",
				FluencyScore:   intp(6),
				AdequacyScore:  intp(3),
				OverallQuality: intp(4),
			},
			wantAllowed: false,
			wantReason:  "fluency score must be between 1 and 5",
		},
		{
			name: "score below scale",
			ctx: SubmitContext{
				AnnotationID:   "ANN-001",
				FluencyScore:   intp(4),
				AdequacyScore:  intp(0),
				OverallQuality: intp(4),
			},
			wantAllowed: false,
			wantReason:  "adequacy score must be between 1 and 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanSubmit(tt.ctx)
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", got.Allowed, tt.wantAllowed, got.Reason)
			}
			if tt.wantReason != "" && !strings.Contains(got.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantAllowed bool
	}{
		{"completed can be approved", StatusCompleted, true},
		{"in_progress cannot be approved", StatusInProgress, false},
		{"reviewed cannot be approved again", StatusReviewed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanApprove(ReviewContext{AnnotationID: "ANN-001", Status: tt.status})
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", got.Allowed, tt.wantAllowed, got.Reason)
			}
		})
	}
}

func TestCanRevise(t *testing.T) {
	tests := []struct {
		name         string
		status       Status
		notes        string
		reason       string
		wantAllowed  bool
		reasonSubstr string
	}{
		{"completed with notes and reason", StatusCompleted, "fixed scores", "scores inflated", true, ""},
		{"reviewed can be revised again", StatusReviewed, "second pass", "missed span", true, ""},
		{"in_progress cannot be revised", StatusInProgress, "n", "r", false, "can only revise"},
		{"empty notes", StatusCompleted, "", "reason", false, "notes are required"},
		{"whitespace notes", StatusCompleted, "   ", "reason", false, "notes are required"},
		{"empty reason", StatusCompleted, "notes", "", false, "reason is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanRevise(ReviseContext{
				AnnotationID: "ANN-001",
				Status:       tt.status,
				Notes:        tt.notes,
				Reason:       tt.reason,
			})
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", got.Allowed, tt.wantAllowed, got.Reason)
			}
			if tt.reasonSubstr != "" && !strings.Contains(got.Reason, tt.reasonSubstr) {
				t.Errorf("Reason = %q, want it to contain %q", got.Reason, tt.reasonSubstr)
			}
		})
	}
}

func TestCanReopen(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		confirmed   bool
		wantAllowed bool
	}{
		{"completed with confirmation", StatusCompleted, true, true},
		{"reviewed with confirmation", StatusReviewed, true, true},
		{"completed without confirmation", StatusCompleted, false, false},
		{"already in progress", StatusInProgress, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanReopen(ReopenContext{AnnotationID: "ANN-001", Status: tt.status, Confirmed: tt.confirmed})
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", got.Allowed, tt.wantAllowed, got.Reason)
			}
		})
	}
}

func TestCanModify(t *testing.T) {
	tests := []struct {
		name        string
		actor       string
		status      Status
		wantAllowed bool
	}{
		{"owner edits draft", "USER-001", StatusInProgress, true},
		{"other user cannot edit", "USER-002", StatusInProgress, false},
		{"owner cannot edit completed", "USER-001", StatusCompleted, false},
		{"owner cannot edit reviewed", "USER-001", StatusReviewed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanModify(ModifyContext{
				AnnotationID: "ANN-001",
				AnnotatorID:  "USER-001",
				ActorID:      tt.actor,
				Status:       tt.status,
			})
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", got.Allowed, tt.wantAllowed, got.Reason)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name        string
		actor       string
		role        string
		confirmed   bool
		wantAllowed bool
	}{
		{"owner with confirmation", "USER-001", "annotator", true, true},
		{"admin with confirmation", "USER-009", "admin", true, true},
		{"stranger denied", "USER-002", "annotator", true, false},
		{"owner without confirmation", "USER-001", "annotator", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanDelete(DeleteContext{
				AnnotationID: "ANN-001",
				AnnotatorID:  "USER-001",
				ActorID:      tt.actor,
				ActorRole:    tt.role,
				Confirmed:    tt.confirmed,
			})
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", got.Allowed, tt.wantAllowed, got.Reason)
			}
		})
	}
}

func TestGuardResultError(t *testing.T) {
	if err := (GuardResult{Allowed: true}).Error(); err != nil {
		t.Errorf("allowed guard should return nil error, got %v", err)
	}
	if err := (GuardResult{Allowed: false, Reason: "nope"}).Error(); err == nil || err.Error() != "nope" {
		t.Errorf("denied guard should surface its reason, got %v", err)
	}
}
