package nodes

import "fmt"

// ValidationError is raised when a record breaks a structural rule
type ValidationError struct {
	// Field is the invalid field, for instance before or validValues
	Field string
	// Reason explains the failure
	Reason string
}

// Error to implement error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError returns a validation error for field, using a format for the reason
func NewValidationError(field string, format string, args ...any) ValidationError {
	return ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
