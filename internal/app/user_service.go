package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepo secondary.UserRepository
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(userRepo secondary.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

func toUser(record *secondary.UserRecord) *primary.User {
	user := &primary.User{
		ID:        record.ID,
		Email:     record.Email,
		FullName:  record.FullName,
		Role:      record.Role,
		IsActive:  record.IsActive,
		CreatedAt: record.CreatedAt,
	}
	if record.Languages != "" {
		user.Languages = strings.Split(record.Languages, ",")
	}
	return user
}

// RegisterUser creates a new user record.
func (s *UserServiceImpl) RegisterUser(ctx context.Context, req primary.RegisterUserRequest) (*primary.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	nextID, err := s.userRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}
	record := &secondary.UserRecord{
		ID:        nextID,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      req.Role,
		Languages: strings.Join(req.Languages, ","),
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	created, err := s.userRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, err
	}
	return toUser(created), nil
}

// GetUser retrieves a user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUser(record), nil
}

// ListUsers lists users, optionally filtered by role.
func (s *UserServiceImpl) ListUsers(ctx context.Context, role string) ([]*primary.User, error) {
	records, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	users := make([]*primary.User, len(records))
	for i, record := range records {
		users[i] = toUser(record)
	}
	return users, nil
}

// DeactivateUser disables a user without removing their work.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, userID string) error {
	return s.userRepo.Deactivate(ctx, userID)
}

// Ensure UserServiceImpl implements the interface
var _ primary.UserService = (*UserServiceImpl)(nil)
