package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civicspark/civic-site/internal/admins/domain"
)

// MemoryAdminRepository keeps admins in process memory. Used when no database
// is configured and in tests.
type MemoryAdminRepository struct {
	lock     sync.RWMutex
	admins   map[string]domain.Admin
	emailIDs map[string]string // email to admin id
}

func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{
		admins:   make(map[string]domain.Admin),
		emailIDs: make(map[string]string),
	}
}

func (r *MemoryAdminRepository) Create(_ context.Context, admin *domain.Admin) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.emailIDs[admin.Email]; ok {
		return domain.ErrEmailTaken
	}
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	r.admins[admin.ID] = *admin
	r.emailIDs[admin.Email] = admin.ID
	return nil
}

func (r *MemoryAdminRepository) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIDs[email]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	a := r.admins[id]
	return &a, nil
}

func (r *MemoryAdminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return &a, nil
}
