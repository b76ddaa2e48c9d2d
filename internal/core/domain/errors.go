package domain

import "fmt"

// PersistenceError wraps any failure reported by the store. Op names the
// repository operation, e.g. "create invoice".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PublicError carries a message that is safe to show to the end user. The
// underlying cause stays reachable through Unwrap for logging only.
type PublicError struct {
	Message string
	cause   error
}

// NewPublicError returns a PublicError with msg hiding cause.
func NewPublicError(msg string, cause error) *PublicError {
	return &PublicError{Message: msg, cause: cause}
}

func (e *PublicError) Error() string { return e.Message }

func (e *PublicError) Unwrap() error { return e.cause }

// ValidationFailure is the expected outcome of rejected form input.
// Errors maps a form field name to its messages.
type ValidationFailure struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
}

// Add appends msg to field.
func (v *ValidationFailure) Add(field, msg string) {
	if v.Errors == nil {
		v.Errors = make(map[string][]string)
	}
	v.Errors[field] = append(v.Errors[field], msg)
}
