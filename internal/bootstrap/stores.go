package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/civicspark/civic-site/config"
	adminsrepo "github.com/civicspark/civic-site/internal/admins/repository"
	"github.com/civicspark/civic-site/internal/admins/service"
	contenthttp "github.com/civicspark/civic-site/internal/content/http"
	contentrepo "github.com/civicspark/civic-site/internal/content/repository"
	"github.com/civicspark/civic-site/internal/logging"
	"github.com/civicspark/civic-site/internal/storage/postgres"
	visitshttp "github.com/civicspark/civic-site/internal/visits/http"
	visitsrepo "github.com/civicspark/civic-site/internal/visits/repository"
)

// VisitStore is the visit log as seen by the router: tracking, reports and
// the dashboard count.
type VisitStore interface {
	visitshttp.Store
	Count(ctx context.Context) (int, error)
}

// Stores is every backing store of the API plus the connections behind them.
type Stores struct {
	Admins  service.AdminStore
	Tokens  service.TokenStore
	Content contenthttp.Stores
	Visits  VisitStore

	Pool  *pgxpool.Pool
	SQL   *sql.DB
	Redis *redis.Client
}

// Close releases whatever connections were opened.
func (s *Stores) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.SQL != nil {
		_ = s.SQL.Close()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}

// MemoryStores returns process-local stores. Data does not survive a restart.
func MemoryStores(tokenTTL time.Duration) *Stores {
	return &Stores{
		Admins: adminsrepo.NewMemoryAdminRepository(),
		Tokens: adminsrepo.NewMemoryTokenRepository(tokenTTL),
		Content: contenthttp.Stores{
			Projects:      contentrepo.NewMemoryStore(contentrepo.Projects),
			Events:        contentrepo.NewMemoryStore(contentrepo.Events),
			CalendarItems: contentrepo.NewMemoryStore(contentrepo.CalendarItems),
		},
		Visits: visitsrepo.NewMemoryVisitRepository(),
	}
}

// OpenStores connects to Postgres and Redis when configured and falls back to
// memory stores for whichever is not.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	stores := MemoryStores(cfg.Auth.TokenTTL)
	log := logging.FromContext(ctx)

	if cfg.Database.Enabled() {
		dsn := postgres.DSN(&cfg.Database)
		pool, err := OpenDB(ctx, DBOptions{DSN: dsn})
		if err != nil {
			return nil, err
		}
		stores.Pool = pool

		if err := postgres.Migrate(ctx, pool); err != nil {
			stores.Close()
			return nil, err
		}

		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.SQL = db

		stores.Admins = adminsrepo.NewAdminRepository(pool)
		stores.Content = contenthttp.Stores{
			Projects:      contentrepo.NewPgStore(pool, contentrepo.Projects),
			Events:        contentrepo.NewPgStore(pool, contentrepo.Events),
			CalendarItems: contentrepo.NewPgStore(pool, contentrepo.CalendarItems),
		}
		stores.Visits = visitsrepo.NewVisitRepository(db)
		log.Info().Msg("using postgres stores")
	} else {
		log.Warn().Msg("no database configured, using in-memory stores")
	}

	if cfg.Redis.Enabled() {
		rdb, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.Redis = rdb
		stores.Tokens = adminsrepo.NewTokenRepository(rdb, cfg.Auth.TokenTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis token store")
	} else {
		log.Warn().Msg("no redis configured, tokens are kept in memory")
	}

	return stores, nil
}
