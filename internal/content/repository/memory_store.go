package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civicspark/civic-site/internal/content/domain"
)

// MemoryStore keeps a resource in process memory, ordered the same way as
// the Postgres store.
type MemoryStore[T any, F any] struct {
	lock    sync.RWMutex
	res     Resource[T, F]
	now     func() time.Time
	records []T // insertion order
}

func NewMemoryStore[T any, F any](res Resource[T, F]) *MemoryStore[T, F] {
	return &MemoryStore[T, F]{res: res, now: time.Now}
}

func (s *MemoryStore[T, F]) List(_ context.Context) ([]T, error) {
	s.lock.RLock()
	out := slices.Clone(s.records)
	s.lock.RUnlock()

	slices.SortStableFunc(out, s.res.Compare)
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (s *MemoryStore[T, F]) Create(_ context.Context, fields F) (T, error) {
	now := s.now().UTC()
	rec := s.res.Build(uuid.New().String(), fields, now, now)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *MemoryStore[T, F]) Update(_ context.Context, id string, fields F) (T, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := s.index(id)
	if i < 0 {
		var zero T
		return zero, domain.ErrNotFound
	}
	rec := s.res.Build(id, fields, s.res.CreatedAt(s.records[i]), s.now().UTC())
	s.records[i] = rec
	return rec, nil
}

func (s *MemoryStore[T, F]) Delete(_ context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := s.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

func (s *MemoryStore[T, F]) Count(_ context.Context) (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore[T, F]) index(id string) int {
	return slices.IndexFunc(s.records, func(rec T) bool { return s.res.ID(rec) == id })
}
