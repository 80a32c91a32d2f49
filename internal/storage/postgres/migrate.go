package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied in order on every start. Statements are idempotent.
var schema = []string{
	`create table if not exists admins (
  id            uuid primary key,
  name          text not null,
  email         text not null unique,
  password_hash text not null,
  created_at    timestamptz not null default now(),
  updated_at    timestamptz not null default now()
);`,
	`create table if not exists projects (
  id          uuid primary key,
  title       text not null,
  description text,
  created_at  timestamptz not null default now(),
  updated_at  timestamptz not null default now()
);`,
	`create table if not exists events (
  id         uuid primary key,
  name       text not null,
  date       text,
  location   text,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);`,
	`create table if not exists calendar_items (
  id         uuid primary key,
  title      text not null,
  start_date text,
  end_date   text,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);`,
	`create table if not exists visits (
  id         uuid primary key,
  ip_address text,
  user_agent text,
  visited_at timestamptz not null default now()
);`,
	`create index if not exists visits_visited_at_idx on visits (visited_at desc);`,
}

// Migrate creates the tables the API needs.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
