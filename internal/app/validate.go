// Package app implements the primary port services. Services hold the
// workflow orchestration: request validation, guard evaluation, and
// repository calls. The pure rules live in internal/core.
package app

import (
	"github.com/go-playground/validator/v10"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
)

// validate is the shared validator instance. It reads the struct tags
// on the primary request types.
var validate = validator.New()

// validateRequest runs struct-tag validation and folds failures into
// the validation error class.
func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return errs.Validationf("invalid request: %v", err)
	}
	return nil
}
