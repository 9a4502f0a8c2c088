package storage

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders, no rewrite needed
	return query
}

func (d *MySQLDialect) UpsertQuery() string {
	return `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			entry_value = VALUES(entry_value),
			updated_at = NOW();
	`
}

func (d *MySQLDialect) CreateTableQuery() string {
	// 191 keeps the primary key inside the utf8mb4 index limit
	return `
		CREATE TABLE IF NOT EXISTS kv_entries (
			entry_key VARCHAR(191) PRIMARY KEY,
			entry_value LONGTEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}
