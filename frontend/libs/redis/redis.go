package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectTimeout bounds dialing and the initial PING.
const ConnectTimeout = 3 * time.Second

// Options builds client options from addr, which is either host:port or a
// redis:// URL. URL credentials and db win over password and db.
func Options(addr, password string, db int) (*redis.Options, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis: addr is empty")
	}

	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis: parse url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr, Password: password, DB: db}
	}

	opts.PoolSize = 1
	opts.MaxRetries = 1
	opts.DialTimeout = ConnectTimeout
	opts.ReadTimeout = ConnectTimeout
	opts.WriteTimeout = ConnectTimeout
	return opts, nil
}

// NewRedisClient connects and checks the server with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	opts, err := Options(addr, password, db)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}

	return client, nil
}
