package session

import (
	"context"
	"sync"
)

// Store is the persistent session store shared by the route guard and the
// KPI fetcher. Implementations must be safe for concurrent use.
//
// The caller is responsible for keeping the store copy and the cookie copy of
// a session in sync; the store does not enforce it.
type Store interface {
	// Read returns the session stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) (Session, error)
	// Write stores the session under key, replacing any previous value.
	Write(ctx context.Context, key string, sess Session) error
	// Clear removes the session stored under key. Clearing a missing key is
	// not an error.
	Clear(ctx context.Context, key string) error
}

// MemoryStore is an in-memory Store implementation, intended for tests and
// single-process deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Read(_ context.Context, key string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Write(_ context.Context, key string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = sess
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}
