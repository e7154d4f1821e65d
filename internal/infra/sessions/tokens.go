package sessions

import (
	"context"
	"sync"
	"time"
)

// TokenStore keeps the photo-library access token of a signed-in session.
// Entries are not persisted across sign-out.
type TokenStore interface {
	Put(ctx context.Context, sessionID, accessToken string, ttl time.Duration) error
	// Get returns "" when the session has no live token.
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the single-process TokenStore used when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, sessionID, accessToken string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{token: accessToken, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return "", nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, sessionID)
		return "", nil
	}
	return e.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
