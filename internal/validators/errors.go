package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is wrapped by every [*ValidationError].
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError lists every rule a value broke, in field order. Messages
// are written for display.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
