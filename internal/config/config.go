// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Defaults applied when no source sets a value.
const (
	DefaultRequestTimeout = 15 * time.Second
	DefaultSearchPath     = "/services/search"
	DefaultCredentialTTL  = 30 * 24 * time.Hour
	DefaultPageSize       = 12
	DefaultChatReplyDelay = 3 * time.Second
)

// StructuredConfig is the top-level configuration container for the
// loopp client. It is populated by merging values from command-line flags,
// environment variables (optionally loaded from a .env file), an optional
// JSON file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: credential lifetime and the
	// optional key used to seal the stored credential.
	App App `envPrefix:"APP_"`

	// Adapter holds the backend base URL and transport settings.
	Adapter Adapter `envPrefix:"API_"`

	// Storage holds configuration for the persisted client state.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds read-cache settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Listing holds paginated listing settings.
	Listing Listing `envPrefix:"LISTING_"`

	// Chat holds settings of the simulated chat backend.
	Chat Chat `envPrefix:"CHAT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SecretKey seals the credential at rest. Empty means the credential
	// is stored as-is.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// CredentialTTL is how long a freshly issued credential stays usable
	// on this client.
	// Env: APP_CREDENTIAL_TTL
	CredentialTTL time.Duration `env:"CREDENTIAL_TTL"`
}

// Adapter holds settings of the outbound HTTP transport.
type Adapter struct {
	// BaseURL is the backend root, e.g. "http://localhost:5000/api/v1".
	// Env: API_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single request. A request that times out is
	// reported as a transport failure.
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SearchPath is the route of the free-text service search.
	// Env: API_SEARCH_PATH
	SearchPath string `env:"SEARCH_PATH"`
}

// Storage groups the configuration for persisted client state.
type Storage struct {
	// DB holds the SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path. Empty keeps state in memory only.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Cache holds read-cache settings.
type Cache struct {
	// TTL is how long a cached read is served without refetching.
	// Zero keeps entries until they are invalidated.
	// Env: CACHE_TTL
	TTL time.Duration `env:"TTL"`
}

// Listing holds paginated listing settings.
type Listing struct {
	// PageSize is the "limit" sent with every page request.
	// Env: LISTING_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// Chat holds settings of the simulated chat backend.
type Chat struct {
	// ReplyDelay is the upper bound of the simulated reply delay.
	// Env: CHAT_REPLY_DELAY
	ReplyDelay time.Duration `env:"REPLY_DELAY"`
}

// defaultConfig returns the values used for anything no source sets.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{CredentialTTL: DefaultCredentialTTL},
		Adapter: Adapter{RequestTimeout: DefaultRequestTimeout, SearchPath: DefaultSearchPath},
		Listing: Listing{PageSize: DefaultPageSize},
		Chat:    Chat{ReplyDelay: DefaultChatReplyDelay},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources. Priority (first non-zero value wins):
//  1. Command-line flags (args)
//  2. Environment variables, including a .env file
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
