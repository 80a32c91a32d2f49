package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civicspark/civic-site/internal/visits/domain"
)

// MemoryVisitRepository is the in-process counterpart of VisitRepository.
type MemoryVisitRepository struct {
	lock   sync.RWMutex
	visits []domain.Visit
}

func NewMemoryVisitRepository() *MemoryVisitRepository {
	return &MemoryVisitRepository{}
}

func (r *MemoryVisitRepository) Record(_ context.Context, ip, userAgent *string, at time.Time) (*domain.Visit, error) {
	v := domain.Visit{
		ID:        uuid.New().String(),
		IPAddress: ip,
		UserAgent: userAgent,
		VisitedAt: at,
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	r.visits = append(r.visits, v)
	return &v, nil
}

func (r *MemoryVisitRepository) Recent(_ context.Context, limit int) ([]domain.Visit, error) {
	r.lock.RLock()
	out := slices.Clone(r.visits)
	r.lock.RUnlock()

	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b domain.Visit) int {
		return b.VisitedAt.Compare(a.VisitedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []domain.Visit{}
	}
	return out, nil
}

func (r *MemoryVisitRepository) Stats(_ context.Context, today, week time.Time) (domain.Stats, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	s := domain.Stats{TotalVisits: len(r.visits)}
	ips := make(map[string]struct{})
	for _, v := range r.visits {
		if v.IPAddress != nil {
			ips[*v.IPAddress] = struct{}{}
		}
		if !v.VisitedAt.Before(today) {
			s.TodayVisits++
		}
		if !v.VisitedAt.Before(week) {
			s.ThisWeekVisits++
		}
	}
	s.UniqueIPs = len(ips)
	return s, nil
}

func (r *MemoryVisitRepository) Count(_ context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.visits), nil
}
