package session

import (
	"context"
	"errors"
	"sync"
)

// TokenKey is the storage key holding the access token.
const TokenKey = "access_token"

// ErrUnknownBackend is returned for an unsupported token.backend value.
var ErrUnknownBackend = errors.New("session: unknown token backend")

// Store persists the session token. Get reports ok=false when no token is stored.
type Store interface {
	Set(ctx context.Context, token string) error
	Get(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set stores token.
func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Get returns the stored token.
func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != "", nil
}

// Clear removes the token.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
