// Package sqlite implements the repository interfaces using SQLite as the
// durable storage backend.
//
// modernc.org/sqlite is a pure Go translation of SQLite — no cgo, no C
// compiler, works everywhere Go works. The server opens this store
// optimistically at startup: if the open fails the process keeps running on
// the in-memory fallback instead of exiting.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/rahulbhardwaj/dorawi/internal/repository"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// The pool is safe for concurrent use; no extra locking happens here.
type DB struct {
	conn *sql.DB
}

var _ repository.Store = (*DB)(nil)

// New opens a SQLite database, configures it, and runs migrations.
//
// dbPath examples:
//   - "data/dorawi.db"  → file-based database (persistent)
//   - ":memory:"        → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open only creates the pool; Ping forces a real connection so a
	// bad path or permission problem surfaces now, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress — needed
	// for a web server where requests share the file.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			avatar        TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			original   TEXT NOT NULL,
			translated TEXT NOT NULL,
			from_lang  TEXT NOT NULL,
			to_lang    TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_history_user_created
			ON history(user_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating history table: %w", err)
	}

	// The UNIQUE index is the backstop for the favorite de-duplication
	// rule; CreateFavorite also pre-checks to return a clean domain error.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS favorites (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			original   TEXT NOT NULL,
			translated TEXT NOT NULL,
			from_lang  TEXT NOT NULL,
			to_lang    TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_dedup
			ON favorites(user_id, original, to_lang);
		CREATE INDEX IF NOT EXISTS idx_favorites_user_created
			ON favorites(user_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating favorites table: %w", err)
	}

	return nil
}
