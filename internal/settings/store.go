package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/kpauljoseph/lumen/internal/storage"
)

// Store reads and writes flat key-value settings. Every method takes the
// query target explicitly so callers can group writes into a transaction.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// String returns the stored value or def when the key is unset.
func (s *Store) String(ctx context.Context, q storage.DBTX, key, def string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetString(ctx context.Context, q storage.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) Int64(ctx context.Context, q storage.DBTX, key string, def int64) (int64, error) {
	raw, err := s.String(ctx, q, key, "")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s is not an integer: %w", key, err)
	}
	return n, nil
}

func (s *Store) SetInt64(ctx context.Context, q storage.DBTX, key string, value int64) error {
	return s.SetString(ctx, q, key, strconv.FormatInt(value, 10))
}

func (s *Store) Bool(ctx context.Context, q storage.DBTX, key string, def bool) (bool, error) {
	raw, err := s.String(ctx, q, key, "")
	if err != nil {
		return false, err
	}
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("setting %s is not a boolean: %w", key, err)
	}
	return b, nil
}

func (s *Store) SetBool(ctx context.Context, q storage.DBTX, key string, value bool) error {
	return s.SetString(ctx, q, key, strconv.FormatBool(value))
}

// All returns every stored key with its value.
func (s *Store) All(ctx context.Context, q storage.DBTX) (map[string]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
