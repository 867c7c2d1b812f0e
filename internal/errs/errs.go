// Package errs defines the error taxonomy shared by all Lakra services.
// Callers classify failures with errors.Is against the sentinel values;
// the constructors wrap a descriptive message around the right sentinel.
package errs

import (
	"errors"
	"fmt"
)

// ErrValidation indicates invalid caller input (bad span bounds, missing
// mandatory scores, empty revision notes). Nothing was written.
var ErrValidation = errors.New("validation failed")

// ErrDuplicate indicates a uniqueness violation on create, surfaced from
// the storage layer's unique constraints.
var ErrDuplicate = errors.New("already exists")

// ErrConflict indicates an illegal workflow transition, such as approving
// an annotation that was never submitted.
var ErrConflict = errors.New("conflicting state")

// ErrNotFound indicates a referenced sentence, annotation, or user is absent.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized indicates the actor may not operate on another user's record.
var ErrUnauthorized = errors.New("not authorized")

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// Duplicatef wraps ErrDuplicate with a formatted message.
func Duplicatef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrDuplicate)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Unauthorizedf wraps ErrUnauthorized with a formatted message.
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnauthorized)
}
