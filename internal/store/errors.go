package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStateNotFound is returned when no value is stored under the
	// requested key.
	ErrStateNotFound = errors.New("client state was not found")

	// ErrStateNotSaved is returned when an upsert completes without error
	// but affects no rows.
	ErrStateNotSaved = errors.New("client state was not saved")
)
