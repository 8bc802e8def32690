package service

import "errors"

var (
	// ErrMissingToken is returned when sign-up or login succeeds without
	// handing out a token.
	ErrMissingToken = errors.New("authentication response carries no token")

	// ErrEmptyServiceID is returned by edit and delete for a blank id.
	ErrEmptyServiceID = errors.New("service id is required")

	// ErrNoSelectedService is returned when no service has been opened yet.
	ErrNoSelectedService = errors.New("no service selected")
)
