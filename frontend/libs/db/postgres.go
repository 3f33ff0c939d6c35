package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// ConnectTimeout bounds dialing and the initial ping.
const ConnectTimeout = 5 * time.Second

// NewPostgresDB opens a single-connection database/sql handle over pgx. A CLI
// invocation issues a handful of statements, so one connection that is closed
// with the process is enough.
func NewPostgresDB(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("db: empty DSN")
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: parse dsn: %w", err)
	}
	if cfg.ConnectTimeout == 0 || cfg.ConnectTimeout > ConnectTimeout {
		cfg.ConnectTimeout = ConnectTimeout
	}

	conn := stdlib.OpenDB(*cfg)
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: ping %s@%s: %w", cfg.User, cfg.Host, err)
	}

	return conn, nil
}
