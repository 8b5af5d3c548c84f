package auth

import "sync"

// TokenStore is the auth-state collaborator consumed by the API client. It
// owns the current credential; the client only reads it. Absence of a token
// is a normal unauthenticated state, not an error.
type TokenStore interface {
	// Token returns the current credential and whether one is present
	Token() (string, bool)
	// IsAuthenticated reports whether the holder currently has a credential
	IsAuthenticated() bool
}

// MemoryStore is an in-memory TokenStore, safe for concurrent use
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates a MemoryStore, optionally pre-loaded with a token
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Token returns the stored credential, if any
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// IsAuthenticated reports whether a credential is stored
func (s *MemoryStore) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// SetToken stores a credential
func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear removes the stored credential
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
