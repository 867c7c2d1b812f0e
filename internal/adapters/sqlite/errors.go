// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is a unique-constraint failure
// from the driver. The unique constraints on annotations and
// evaluations are the authoritative uniqueness enforcement; callers
// translate this into errs.ErrDuplicate so a lost create race surfaces
// as "already exists" rather than a generic storage failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
