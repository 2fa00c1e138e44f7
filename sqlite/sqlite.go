// Package sqlite provides SQLite-based storage for scraped post history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas are applied to every connection before the schema is created.
var pragmas = []string{
	// Wait on lock contention instead of failing with "database is locked".
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	// In-memory databases do not support WAL.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Path returns the database path.
func (db *DB) Path() string {
	return db.path
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
// A post is stored once per target; reposting the same text later is
// treated as the same post.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			target TEXT NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			url TEXT NOT NULL,
			identity TEXT NOT NULL DEFAULT '',
			posted_at TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			scraped_at TEXT NOT NULL,
			UNIQUE (target, fingerprint)
		);

		CREATE INDEX IF NOT EXISTS idx_posts_target_scraped_at ON posts(target, scraped_at);
	`

	_, err := db.db.Exec(schema)
	return err
}
