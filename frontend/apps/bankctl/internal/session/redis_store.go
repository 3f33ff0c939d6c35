package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is used when no key is configured.
const DefaultRedisKey = "bankctl:" + TokenKey

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps the token under a single redis key without TTL.
type RedisStore struct {
	client RedisClient
	key    string
}

// NewRedisStore returns redis-backed store.
func NewRedisStore(client RedisClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Set stores token.
func (s *RedisStore) Set(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, 0).Err()
}

// Get returns the stored token.
func (s *RedisStore) Get(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return token, token != "", nil
}

// Clear removes the token.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
