package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/loopp-client/internal/config"
	"github.com/MKhiriev/loopp-client/internal/crypto"
	"github.com/MKhiriev/loopp-client/internal/logger"
)

// ClientStorages groups the client-side stores into a single value that can
// be passed around the service layer.
type ClientStorages struct {
	// Credentials holds the session credential.
	Credentials CredentialStore
	// Selection holds the last selected service.
	Selection SelectionStore

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. With an empty DSN all state lives in memory.
// Otherwise it performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Builds the typed stores on top of the state repository.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, sealer crypto.Sealer, logger *logger.Logger) (*ClientStorages, error) {
	if cfg.DB.DSN == "" {
		logger.Info().Msg("no database configured, keeping client state in memory")
		repo := NewMemoryStateRepository()
		return &ClientStorages{
			Credentials: NewCredentialStore(repo, sealer),
			Selection:   NewSelectionStore(repo),
		}, nil
	}

	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	repo := NewStateRepository(db, logger)
	return &ClientStorages{
		Credentials: NewCredentialStore(repo, sealer),
		Selection:   NewSelectionStore(repo),
		db:          db,
	}, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
