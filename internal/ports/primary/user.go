package primary

import "context"

// User is the caller-facing view of one registered user.
type User struct {
	ID        string
	Email     string
	FullName  string
	Role      string
	Languages []string
	IsActive  bool
	CreatedAt string
}

// RegisterUserRequest contains parameters for registering a user.
// Authentication lives outside the core; this only establishes the
// identity record that annotations and revisions reference.
type RegisterUserRequest struct {
	Email     string   `validate:"required,email"`
	FullName  string   `validate:"required"`
	Role      string   `validate:"required,oneof=annotator evaluator admin"`
	Languages []string `validate:"omitempty,dive,required"`
}

// UserService defines the primary port for user operations.
type UserService interface {
	// RegisterUser creates a new user record.
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*User, error)

	// ListUsers lists users, optionally filtered by role.
	ListUsers(ctx context.Context, role string) ([]*User, error)

	// DeactivateUser disables a user without removing their work.
	DeactivateUser(ctx context.Context, userID string) error
}
