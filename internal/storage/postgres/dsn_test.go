package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civicspark/civic-site/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "civic", Password: "pw", Name: "site"}
	assert.Equal(t, "host=db port=5433 user=civic password=pw dbname=site sslmode=disable", DSN(cfg))

	cfg.DSN = "postgres://u:p@h/db"
	assert.Equal(t, "postgres://u:p@h/db", DSN(cfg))
}
