package features

import (
	"errors"
)

// Sentinel kinds for validation failures.
var (
	ErrMissingFeatures = errors.New("missing features")
	ErrNotNumeric      = errors.New("non-numeric feature")
)

// ValidationError carries the client-facing message for a rejected input.
// Error() returns the message verbatim so handlers can embed it in the
// response body; errors.Is matches the sentinel kind.
type ValidationError struct {
	kind    error
	Message string
}

func newValidationError(kind error, message string) *ValidationError {
	return &ValidationError{kind: kind, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(e.kind, target)
}
