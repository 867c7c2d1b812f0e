package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, full_name, role, languages, is_active, created_at"

func scanUser(scan func(dest ...any) error) (*secondary.UserRecord, error) {
	var (
		languages sql.NullString
		createdAt time.Time
	)
	user := &secondary.UserRecord{}
	err := scan(&user.ID, &user.Email, &user.FullName, &user.Role,
		&languages, &user.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}
	user.Languages = languages.String
	user.CreatedAt = createdAt.Format(time.RFC3339)
	return user, nil
}

// Create persists a new user. The UNIQUE email constraint rejects a
// second registration with the same address.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, full_name, role, languages, is_active) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.FullName, user.Role, nullStr(user.Languages), user.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Duplicatef("user with email %s", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("user %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("user with email %s", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List retrieves users, optionally filtered by role.
func (r *UserRepository) List(ctx context.Context, role string) ([]*secondary.UserRecord, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY id"
	args := []any{}
	if role != "" {
		query = "SELECT " + userColumns + " FROM users WHERE role = ? ORDER BY id"
		args = append(args, role)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Deactivate disables a user without removing their work.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_active = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFoundf("user %s", id)
	}
	return nil
}

// GetNextID returns the next available user ID.
func (r *UserRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM users",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next user ID: %w", err)
	}
	return fmt.Sprintf("USER-%03d", maxID+1), nil
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
