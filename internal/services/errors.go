package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrForbidden is returned when the caller lacks the superuser role
var ErrForbidden = errors.New("forbidden")

// ValidationError reports a malformed request. Message is shown to the caller as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// PartialFailureError is returned when a multi-step write failed and left state behind that
// could not be undone. Err is the failing step's error.
type PartialFailureError struct {
	Operation string
	Step      string
	Err       error
	Residual  []string
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s failed at %s: %v (residual: %s)", e.Operation, e.Step, e.Err, strings.Join(e.Residual, "; "))
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// ResidualSummary renders the residual state for API responses
func (e *PartialFailureError) ResidualSummary() string {
	return strings.Join(e.Residual, "; ")
}
