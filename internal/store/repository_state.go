package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/loopp-client/internal/logger"
)

type stateRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewStateRepository returns a SQLite-backed [StateRepository].
func NewStateRepository(db *DB, logger *logger.Logger) StateRepository {
	return &stateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *stateRepository) GetState(ctx context.Context, key string) (StateEntry, error) {
	query, args, err := buildGetStateQuery(key)
	if err != nil {
		return StateEntry{}, fmt.Errorf("failed to build get state query: %w", err)
	}

	var (
		entry     StateEntry
		expiresAt sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&entry.Key, &entry.Value, &expiresAt, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StateEntry{}, ErrStateNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "stateRepository.GetState").
			Str("key", key).
			Msg("failed to read client state")
		return StateEntry{}, fmt.Errorf("failed to read client state %q: %w", key, err)
	}

	if expiresAt.Valid {
		entry.ExpiresAt = &expiresAt.Time
	}

	return entry, nil
}

func (r *stateRepository) PutState(ctx context.Context, entry StateEntry) error {
	query, args, err := buildPutStateQuery(entry)
	if err != nil {
		return fmt.Errorf("failed to build put state query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "stateRepository.PutState").
			Str("key", entry.Key).
			Msg("failed to write client state")
		return fmt.Errorf("failed to write client state %q: %w", entry.Key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrStateNotSaved
	}

	return nil
}

// DeleteState is idempotent: deleting a missing key is not an error.
func (r *stateRepository) DeleteState(ctx context.Context, key string) error {
	query, args, err := buildDeleteStateQuery(key)
	if err != nil {
		return fmt.Errorf("failed to build delete state query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "stateRepository.DeleteState").
			Str("key", key).
			Msg("failed to delete client state")
		return fmt.Errorf("failed to delete client state %q: %w", key, err)
	}

	return nil
}
