package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicspark/civic-site/internal/admins/domain"
)

// AdminRepository persists admins in Postgres.
type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin. A duplicate email yields domain.ErrEmailTaken.
func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}

	const q = `
insert into admins (id, name, email, password_hash)
values ($1, $2, $3, $4)
returning created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q, admin.ID, admin.Name, admin.Email, admin.PasswordHash).
		Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const q = `
select id, name, email, password_hash, created_at, updated_at
from admins
where email = $1;
`
	return r.getOne(ctx, q, email)
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrAdminNotFound
	}

	const q = `
select id, name, email, password_hash, created_at, updated_at
from admins
where id = $1;
`
	return r.getOne(ctx, q, id)
}

func (r *AdminRepository) getOne(ctx context.Context, q string, arg string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.QueryRow(ctx, q, arg).
		Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
