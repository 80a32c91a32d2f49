package repository

import (
	"context"
	"sync"
	"time"

	"github.com/civicspark/civic-site/internal/admins/domain"
)

type memoryToken struct {
	adminID   string
	expiresAt time.Time
}

// MemoryTokenRepository is the in-process counterpart of TokenRepository.
// Expired tokens are dropped on the next Issue.
type MemoryTokenRepository struct {
	lock   sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	tokens map[string]memoryToken
}

func NewMemoryTokenRepository(ttl time.Duration) *MemoryTokenRepository {
	return &MemoryTokenRepository{
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]memoryToken),
	}
}

func (r *MemoryTokenRepository) Issue(_ context.Context, adminID string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	now := r.now()
	for k, t := range r.tokens {
		if !now.Before(t.expiresAt) {
			delete(r.tokens, k)
		}
	}
	r.tokens[token] = memoryToken{adminID: adminID, expiresAt: now.Add(r.ttl)}
	return token, nil
}

func (r *MemoryTokenRepository) Resolve(_ context.Context, token string) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	t, ok := r.tokens[token]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	if !r.now().Before(t.expiresAt) {
		delete(r.tokens, token)
		return "", domain.ErrTokenNotFound
	}
	return t.adminID, nil
}

func (r *MemoryTokenRepository) Revoke(_ context.Context, token string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.tokens, token)
	return nil
}
