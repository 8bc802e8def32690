package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// SecretKey seals the stored credential. Empty disables sealing.
	SecretKey string
	// CredentialTTL caps how long a stored credential stays usable.
	CredentialTTL time.Duration
}

// ClientAdapter holds settings used by the HTTP transport layer.
type ClientAdapter struct {
	// BaseURL is the backend root every resource path is resolved against.
	BaseURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// SearchPath is the route of the free-text service search.
	SearchPath string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path. Empty keeps state in memory.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientCache holds read-cache settings.
type ClientCache struct {
	TTL time.Duration
}

// ClientListing holds services listing settings.
type ClientListing struct {
	PageSize int
}

// ClientChat holds simulated chat settings.
type ClientChat struct {
	ReplyDelay time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the backend URL and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	Cache   ClientCache
	Listing ClientListing
	Chat    ClientChat
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps a merged [StructuredConfig] onto the client view
// without validating it.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			SecretKey:     cfg.App.SecretKey,
			CredentialTTL: cfg.App.CredentialTTL,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			SearchPath:     cfg.Adapter.SearchPath,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Cache:   ClientCache{TTL: cfg.Cache.TTL},
		Listing: ClientListing{PageSize: cfg.Listing.PageSize},
		Chat:    ClientChat{ReplyDelay: cfg.Chat.ReplyDelay},
	}
}
