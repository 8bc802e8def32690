package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive credential TTL).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidListingConfigs indicates an unusable page size.
	ErrInvalidListingConfigs = errors.New("invalid listing configuration")
)
