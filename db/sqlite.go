package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var initTable = []string{
	`CREATE TABLE IF NOT EXISTS news (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL UNIQUE,
	published_at TEXT NOT NULL DEFAULT '',
	zone TEXT NOT NULL,
	is_favorite INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_news_zone ON news(zone)`,
	`CREATE INDEX IF NOT EXISTS idx_news_published_at ON news(published_at)`,
}

// Connect opens the SQLite database at path and makes sure the schema
// exists. The pool is capped at one connection: SQLite allows a single
// writer, and funneling everything through one connection also keeps
// read-modify-write statements serialized.
func Connect(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	for _, stmt := range initTable {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return conn, nil
}
