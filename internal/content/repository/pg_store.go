package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicspark/civic-site/internal/content/domain"
)

// PgStore persists a resource in Postgres through pgx.
type PgStore[T any, F any] struct {
	db  *pgxpool.Pool
	res Resource[T, F]

	selectCols string
}

func NewPgStore[T any, F any](db *pgxpool.Pool, res Resource[T, F]) *PgStore[T, F] {
	cols := append([]string{"id"}, res.Columns...)
	cols = append(cols, "created_at", "updated_at")
	return &PgStore[T, F]{
		db:         db,
		res:        res,
		selectCols: strings.Join(cols, ", "),
	}
}

func (s *PgStore[T, F]) List(ctx context.Context) ([]T, error) {
	q := fmt.Sprintf("select %s from %s order by %s;", s.selectCols, s.res.Table, s.res.OrderBy)
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.res.Table, err)
	}
	defer rows.Close()

	out := make([]T, 0, 16)
	for rows.Next() {
		rec, err := s.res.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PgStore[T, F]) Create(ctx context.Context, fields F) (T, error) {
	placeholders := make([]string, len(s.res.Columns)+1)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf("insert into %s (id, %s) values (%s) returning %s;",
		s.res.Table, strings.Join(s.res.Columns, ", "), strings.Join(placeholders, ", "), s.selectCols)

	args := append([]any{uuid.New().String()}, s.res.Values(fields)...)
	rec, err := s.res.Scan(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		return rec, fmt.Errorf("insert into %s: %w", s.res.Table, err)
	}
	return rec, nil
}

func (s *PgStore[T, F]) Update(ctx context.Context, id string, fields F) (T, error) {
	var zero T
	if _, err := uuid.Parse(id); err != nil {
		return zero, domain.ErrNotFound
	}

	sets := make([]string, len(s.res.Columns))
	for i, col := range s.res.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}
	q := fmt.Sprintf("update %s set %s, updated_at = now() where id = $1 returning %s;",
		s.res.Table, strings.Join(sets, ", "), s.selectCols)

	args := append([]any{id}, s.res.Values(fields)...)
	rec, err := s.res.Scan(s.db.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, domain.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", s.res.Table, err)
	}
	return rec, nil
}

func (s *PgStore[T, F]) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	tag, err := s.db.Exec(ctx, fmt.Sprintf("delete from %s where id = $1;", s.res.Table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", s.res.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PgStore[T, F]) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, fmt.Sprintf("select count(*) from %s;", s.res.Table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.res.Table, err)
	}
	return n, nil
}
