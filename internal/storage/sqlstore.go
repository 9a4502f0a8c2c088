package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"learnquest/internal/config"
)

// SQLStore is a Store backed by a single kv_entries table. Each call is
// one statement, so per-key atomicity comes from the database itself.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// Initialize creates and configures a store connection using SQLite
func Initialize(dbPath string) (*SQLStore, error) {
	return open(NewSQLiteDialect(), DialectConfig{Path: dbPath})
}

// InitializeWithConfig creates and configures a store connection based on config
func InitializeWithConfig(cfg *config.Config) (*SQLStore, error) {
	switch strings.ToLower(cfg.DatabaseType) {
	case "postgres", "postgresql":
		return open(NewPostgresDialect(), DialectConfig{URL: cfg.DatabaseURL})
	case "mysql":
		return open(NewMySQLDialect(), DialectConfig{URL: cfg.DatabaseURL})
	case "sqlite", "sqlite3", "":
		return open(NewSQLiteDialect(), DialectConfig{Path: cfg.DatabasePath})
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}

func open(dialect Dialect, dialectConfig DialectConfig) (*SQLStore, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	store := &SQLStore{db: db, dialect: dialect}
	if err := store.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to create kv_entries table: %w", err)
	}

	return store, nil
}

// ensureTable creates the kv_entries table if it does not exist
func (s *SQLStore) ensureTable() error {
	_, err := s.db.Exec(s.dialect.CreateTableQuery())
	return err
}

// Close closes the underlying database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, with ok=false for a missing key
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := s.dialect.RewriteQuery(`
		SELECT entry_value FROM kv_entries WHERE entry_key = ?
	`)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return value, true, nil
}

// Set writes value under key, replacing any existing value
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertQuery())

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	query := s.dialect.RewriteQuery(`
		DELETE FROM kv_entries WHERE entry_key = ?
	`)

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}
