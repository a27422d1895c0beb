// Package testutil provides an in-memory SQLite database carrying the
// application schema, for repository, service and handler tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/uptrace/bun/driver/sqliteshim"
)

// schema mirrors the MySQL migrations: same tables, columns and unique
// keys.
const schema = `
CREATE TABLE genres (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(100) NOT NULL UNIQUE
);
CREATE TABLE files (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(255) NOT NULL,
    path VARCHAR(1024) NOT NULL UNIQUE
);
CREATE TABLE halls (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        VARCHAR(100) NOT NULL,
    row_count   INTEGER NOT NULL,
    place_count INTEGER NOT NULL,
    description TEXT NOT NULL
);
CREATE TABLE films (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                VARCHAR(255) NOT NULL,
    description         TEXT NOT NULL,
    ` + "`year`" + `              INTEGER NOT NULL,
    genre_id            INTEGER NOT NULL REFERENCES genres (id),
    minimal_age         INTEGER NOT NULL,
    duration_in_minutes INTEGER NOT NULL,
    file_id             INTEGER NOT NULL REFERENCES files (id)
);
CREATE TABLE film_sessions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    film_id    INTEGER NOT NULL REFERENCES films (id),
    hall_id    INTEGER NOT NULL REFERENCES halls (id),
    start_time DATETIME NOT NULL,
    end_time   DATETIME NOT NULL,
    price      INTEGER NOT NULL
);
CREATE TABLE users (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name VARCHAR(255) NOT NULL,
    email     VARCHAR(255) NOT NULL UNIQUE,
    password  VARCHAR(255) NOT NULL
);
CREATE TABLE tickets (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   INTEGER NOT NULL REFERENCES film_sessions (id),
    ` + "`row_number`" + ` INTEGER NOT NULL,
    place_number INTEGER NOT NULL,
    user_id      INTEGER NOT NULL REFERENCES users (id),
    UNIQUE (session_id, ` + "`row_number`" + `, place_number)
);
`

// NewDB opens a fresh in-memory database with the schema applied.  The
// pool is pinned to one connection because every SQLite :memory:
// connection is a separate database.  Foreign keys are not enforced, so
// tests may insert tickets for users or sessions they never created.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}
