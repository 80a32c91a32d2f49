package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/civicspark/civic-site/internal/visits/domain"
)

// VisitRepository stores visits through database/sql (lib/pq driver).
type VisitRepository struct {
	db *sql.DB
}

func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Record appends a visit.
func (r *VisitRepository) Record(ctx context.Context, ip, userAgent *string, at time.Time) (*domain.Visit, error) {
	v := &domain.Visit{
		ID:        uuid.New().String(),
		IPAddress: ip,
		UserAgent: userAgent,
		VisitedAt: at,
	}

	const q = `
INSERT INTO visits (id, ip_address, user_agent, visited_at)
VALUES ($1, $2, $3, $4);
`
	if _, err := r.db.ExecContext(ctx, q, v.ID, nullString(ip), nullString(userAgent), at); err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}
	return v, nil
}

// Recent returns up to limit visits, newest first.
func (r *VisitRepository) Recent(ctx context.Context, limit int) ([]domain.Visit, error) {
	const q = `
SELECT id, ip_address, user_agent, visited_at
FROM visits
ORDER BY visited_at DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Visit, 0, limit)
	for rows.Next() {
		var (
			v      domain.Visit
			ip, ua sql.NullString
		)
		if err := rows.Scan(&v.ID, &ip, &ua, &v.VisitedAt); err != nil {
			return nil, err
		}
		v.IPAddress = stringPtr(ip)
		v.UserAgent = stringPtr(ua)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats aggregates the counters for the given day and week starts.
func (r *VisitRepository) Stats(ctx context.Context, today, week time.Time) (domain.Stats, error) {
	const q = `
SELECT
  COUNT(*),
  COUNT(DISTINCT ip_address),
  COUNT(*) FILTER (WHERE visited_at >= $1),
  COUNT(*) FILTER (WHERE visited_at >= $2)
FROM visits;
`
	var s domain.Stats
	err := r.db.QueryRowContext(ctx, q, today, week).
		Scan(&s.TotalVisits, &s.UniqueIPs, &s.TodayVisits, &s.ThisWeekVisits)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("visit stats: %w", err)
	}
	return s, nil
}

func (r *VisitRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
