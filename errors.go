package finbook

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a transaction, account or recurring rule id
// does not exist in the ledger. The operation is aborted and the ledger is
// left unchanged.
var ErrNotFound = errors.New("not found")

// ErrImportFormat is returned when an import payload is malformed or
// structurally invalid. The current ledger is left untouched.
var ErrImportFormat = errors.New("invalid import format")

// ValidationError reports a transaction or rule that failed validation before
// any mutation occurred.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
