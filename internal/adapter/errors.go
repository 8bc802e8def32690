package adapter

import (
	"errors"
)

// Messages used when the backend gives none.
const (
	MsgUnexpected    = "An unexpected error occurred."
	MsgSignUpFailed  = "Sign up failed."
	MsgLoginFailed   = "Login failed."
	MsgListingFailed = "Failed to fetch services."
)

var (
	// ErrTransport marks failures where no usable response arrived: network
	// errors, timeouts and undecodable bodies.
	ErrTransport = errors.New("transport failure")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	// ErrUnexpectedStatus covers statuses without a dedicated sentinel.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// APIError is the single error type the adapter returns. Message is always
// fit for display; the cause stays reachable through errors.Is / errors.As.
type APIError struct {
	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int
	Message    string

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Message returns the display text of err. Errors that did not come from
// the adapter yield [MsgUnexpected].
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return MsgUnexpected
}
