package storage

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) UpsertQuery() string {
	return `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = EXCLUDED.entry_value,
			updated_at = NOW();
	`
}

func (d *PostgresDialect) CreateTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS kv_entries (
			entry_key TEXT PRIMARY KEY,
			entry_value TEXT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);
	`
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}
