package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ParseFlags parses configuration flags from args (without the program name).
//
// Flags:
//
//	-api backend base URL
//	-request-timeout request timeout (e.g., "15s", "1m")
//	-search-path search route
//	-d SQLite file for persisted client state
//	-secret-key key used to seal the stored credential
//	-credential-ttl credential lifetime (e.g., "720h")
//	-cache-ttl read-cache staleness window
//	-page-size services page size
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var baseURL, searchPath, databaseDSN, secretKey, jsonConfigPath string
	var requestTimeout, credentialTTL, cacheTTL time.Duration
	var pageSize int

	fs := flag.NewFlagSet("loopp-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&baseURL, "api", "", "Backend base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	fs.StringVar(&searchPath, "search-path", "", "Search route")
	fs.StringVar(&databaseDSN, "d", "", "SQLite file for client state")
	fs.StringVar(&secretKey, "secret-key", "", "Credential sealing key")
	fs.DurationVar(&credentialTTL, "credential-ttl", 0, "Credential lifetime (e.g., 720h)")
	fs.DurationVar(&cacheTTL, "cache-ttl", 0, "Read cache TTL (e.g., 1m)")
	fs.IntVar(&pageSize, "page-size", 0, "Services page size")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SecretKey:     secretKey,
			CredentialTTL: credentialTTL,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
			SearchPath:     searchPath,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Cache:        Cache{TTL: cacheTTL},
		Listing:      Listing{PageSize: pageSize},
		JSONFilePath: jsonConfigPath,
	}, nil
}
