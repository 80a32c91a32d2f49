package client

import "sync"

// TokenKey is the storage key of the credential token.
const TokenKey = "auth_token"

// TokenStore is durable client-side storage for the credential token.
type TokenStore interface {
	Load() (string, bool)
	Save(token string) error
	Clear() error
}

// MemoryTokenStore keeps the token for the lifetime of the value.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
