package postgres

import (
	"fmt"

	"github.com/civicspark/civic-site/config"
)

// DSN returns DB_DSN when set, otherwise a keyword/value string built from
// the discrete DB_* settings. Both lib/pq and pgx accept either form.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
