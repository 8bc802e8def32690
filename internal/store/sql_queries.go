package store

import (
	sq "github.com/Masterminds/squirrel"
)

const clientStateTable = "client_state"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetStateQuery(key string) (string, []any, error) {
	return psql.
		Select("key", "value", "expires_at", "updated_at").
		From(clientStateTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

// buildPutStateQuery builds an upsert: a second put under the same key
// replaces the value.
func buildPutStateQuery(entry StateEntry) (string, []any, error) {
	return psql.
		Insert(clientStateTable).
		Columns("key", "value", "expires_at", "updated_at").
		Values(entry.Key, entry.Value, entry.ExpiresAt, entry.UpdatedAt).
		Suffix("ON CONFLICT(key) DO UPDATE SET " +
			"value = excluded.value, " +
			"expires_at = excluded.expires_at, " +
			"updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteStateQuery(key string) (string, []any, error) {
	return psql.
		Delete(clientStateTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}
