package app

import (
	"context"
	"errors"
	"testing"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
)

func TestRegisterUser(t *testing.T) {
	svc := NewUserService(newMockUserRepository())
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, primary.RegisterUserRequest{
		Email:     "maria@example.com",
		FullName:  "Maria Santos",
		Role:      "annotator",
		Languages: []string{"fil", "en"},
	})
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if user.ID != "USER-001" {
		t.Errorf("expected USER-001, got %s", user.ID)
	}
	if len(user.Languages) != 2 || user.Languages[0] != "fil" {
		t.Errorf("unexpected languages %v", user.Languages)
	}
	if !user.IsActive {
		t.Error("expected new user active")
	}
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	svc := NewUserService(newMockUserRepository())
	ctx := context.Background()

	cases := []struct {
		name string
		req  primary.RegisterUserRequest
	}{
		{"bad email", primary.RegisterUserRequest{Email: "not-an-email", FullName: "X", Role: "annotator"}},
		{"unknown role", primary.RegisterUserRequest{Email: "x@example.com", FullName: "X", Role: "overlord"}},
		{"missing name", primary.RegisterUserRequest{Email: "x@example.com", Role: "annotator"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.RegisterUser(ctx, tc.req); !errors.Is(err, errs.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	svc := NewUserService(newMockUserRepository())
	ctx := context.Background()

	req := primary.RegisterUserRequest{Email: "maria@example.com", FullName: "Maria", Role: "annotator"}
	if _, err := svc.RegisterUser(ctx, req); err != nil {
		t.Fatalf("first RegisterUser failed: %v", err)
	}
	if _, err := svc.RegisterUser(ctx, req); !errors.Is(err, errs.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestListUsers_ByRole(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	for _, u := range []primary.RegisterUserRequest{
		{Email: "a@example.com", FullName: "A", Role: "annotator"},
		{Email: "b@example.com", FullName: "B", Role: "evaluator"},
		{Email: "c@example.com", FullName: "C", Role: "admin"},
	} {
		if _, err := svc.RegisterUser(ctx, u); err != nil {
			t.Fatalf("RegisterUser failed: %v", err)
		}
	}

	evaluators, err := svc.ListUsers(ctx, "evaluator")
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(evaluators) != 1 || evaluators[0].Email != "b@example.com" {
		t.Errorf("unexpected evaluators %v", evaluators)
	}
}

func TestDeactivateUser(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, primary.RegisterUserRequest{
		Email: "maria@example.com", FullName: "Maria", Role: "annotator",
	})
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	if err := svc.DeactivateUser(ctx, user.ID); err != nil {
		t.Fatalf("DeactivateUser failed: %v", err)
	}
	got, _ := svc.GetUser(ctx, user.ID)
	if got.IsActive {
		t.Error("expected user inactive")
	}
}
