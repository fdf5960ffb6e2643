// Package database provides the SQLite connection used for the optional
// analysis configuration database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps a read-mostly SQLite connection.
type DB struct {
	conn *sql.DB
	path string
	name string // friendly name for logging
}

// Config holds database configuration.
type Config struct {
	Path string
	Name string
}

// New opens a SQLite database, creating the parent directory if needed.
// file: URIs are passed through untouched so tests can use in-memory
// databases.
func New(cfg Config) (*DB, error) {
	if !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		cfg.Path = absPath
	}

	conn, err := sql.Open("sqlite", connectionString(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}

	// The analysis DB is read once at startup; a single connection avoids
	// SQLite writer contention without any pooling tuning.
	conn.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	return &DB{conn: conn, path: cfg.Path, name: cfg.Name}, nil
}

// connectionString appends the PRAGMAs we always want.
func connectionString(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// Conn exposes the underlying *sql.DB.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the resolved database path.
func (db *DB) Path() string {
	return db.path
}

// Name returns the friendly database name.
func (db *DB) Name() string {
	return db.name
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database %s: %w", db.name, err)
	}
	return nil
}
