// Package sqlite implements the persistence ports on an embedded SQLite
// database.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB holds split reader/writer connection pools over one SQLite file in WAL
// mode. The writer pool is capped at a single connection so concurrent
// webhook deliveries serialize their writes instead of hitting "database is
// locked". Reads go through a small separate pool.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
	path   string
}

// dsn builds the connection string for a database file: WAL journal, busy
// timeout, NORMAL synchronous, foreign keys on, 64MB page cache.
func dsn(dbPath string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=cache_size(-64000)",
		dbPath,
	)
}

// open opens one pool against the DSN with the given connection cap and
// verifies it with a ping.
func open(connString string, maxConns int) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", connString)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(maxConns)

	if err := pool.Ping(); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return pool, nil
}

// NewDB opens the reader and writer pools for the database at dbPath,
// creating the file if needed.
func NewDB(dbPath string) (*DB, error) {
	connString := dsn(dbPath)

	writer, err := open(connString, 1)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}

	reader, err := open(connString, 4)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}

	return &DB{
		Writer: writer,
		Reader: reader,
		path:   dbPath,
	}, nil
}

// Close closes both pools and returns the first error encountered.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}

	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}

	return firstErr
}
