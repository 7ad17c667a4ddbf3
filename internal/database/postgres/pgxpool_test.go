package postgres

import (
	"fmt"
	"testing"

	"skill-exchange/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost: " db ", DBPort: "5432", DBUser: "app", DBPassword: "s3cret",
		DBName: "skills", DBSSLMode: "disable",
	})
	assert.Equal(t, "host=db port=5432 user=app password=s3cret dbname=skills sslmode=disable", dsn)
}

func TestErrorClassifiers(t *testing.T) {
	dup := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(dup))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(dup))
}

func TestNilPool(t *testing.T) {
	var p *Pool
	assert.ErrorIs(t, p.Ping(t.Context()), errNilDB)
	assert.ErrorIs(t, p.QueryRow(t.Context(), "SELECT 1").Scan(), errNilDB)
	assert.NoError(t, p.Close())
}
