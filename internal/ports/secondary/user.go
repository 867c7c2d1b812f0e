package secondary

import "context"

// UserRecord mirrors the identity collaborator just enough for
// foreign-key integrity and role guards. Authentication happens
// outside the core.
type UserRecord struct {
	ID        string
	Email     string
	FullName  string
	Role      string
	Languages string
	IsActive  bool
	CreatedAt string
}

// UserRepository persists users.
type UserRepository interface {
	// Create persists a new user. A duplicate email fails with
	// errs.ErrDuplicate via the storage unique constraint.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)

	// List retrieves users, optionally filtered by role.
	List(ctx context.Context, role string) ([]*UserRecord, error)

	// Deactivate disables a user without removing their work.
	Deactivate(ctx context.Context, id string) error

	// GetNextID returns the next available user ID.
	GetNextID(ctx context.Context) (string, error)
}
