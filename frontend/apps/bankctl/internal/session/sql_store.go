package session

import (
	"context"
	"database/sql"
	"errors"
)

// SQLStore keeps the token in a key/value table (postgres via pgx stdlib).
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns a store over db. Call EnsureSchema once before use.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// EnsureSchema creates the key/value table if missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS bankctl_kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// Set upserts the token row.
func (s *SQLStore) Set(ctx context.Context, token string) error {
	const query = `
		INSERT INTO bankctl_kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := s.db.ExecContext(ctx, query, TokenKey, token)
	return err
}

// Get returns the stored token.
func (s *SQLStore) Get(ctx context.Context) (string, bool, error) {
	const query = `SELECT value FROM bankctl_kv WHERE key = $1`
	var token string
	if err := s.db.QueryRowContext(ctx, query, TokenKey).Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return token, token != "", nil
}

// Clear deletes the token row.
func (s *SQLStore) Clear(ctx context.Context) error {
	const query = `DELETE FROM bankctl_kv WHERE key = $1`
	_, err := s.db.ExecContext(ctx, query, TokenKey)
	return err
}
