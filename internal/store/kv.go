package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// ProgressKey is the kv key the serialized progress state lives under.
const ProgressKey = "progress"

// KV is the persistence provider for opaque blobs keyed by name.
// Read reports absence through the second return value, not an error.
type KV interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type kvRepo struct {
	db *sql.DB
}

func (r *kvRepo) Read(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sqlBuilder.
		Select("value").
		From("kv").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build kv read: %w", err)
	}

	var value []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read key %q: %w", key, err)
	}
	return value, true, nil
}

func (r *kvRepo) Write(ctx context.Context, key string, value []byte) error {
	// Squirrel has no upsert support for SQLite; use the suffix form.
	query, args, err := sqlBuilder.
		Insert("kv").
		Columns("key", "value", "saved_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, saved_at = excluded.saved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv write: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	query, args, err := sqlBuilder.
		Delete("kv").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}
