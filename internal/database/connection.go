package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/offthegrid/offthegrid/internal/config"
)

// ErrUnsupportedDatabaseURL is returned for connection strings naming no known backend
var ErrUnsupportedDatabaseURL = errors.New("unsupported database url")

const (
	memoryPath = ":memory:"

	// SQLite pragmas applied on every connection
	sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	sqliteWAL     = "&_pragma=journal_mode(WAL)"
)

// Target is a parsed connection string
type Target struct {
	Dialect Dialect
	DSN     string
	Path    string // SQLite file path; empty for PostgreSQL and in-memory databases
}

// ParseURL maps a connection string onto a driver and DSN.
//
//	sqlite://data/people.db   file-backed SQLite
//	sqlite://:memory:         in-memory SQLite
//	file:people.db            file-backed SQLite
//	people.db                 bare path with a .db, .sqlite or .sqlite3 extension
//	postgres://user@host/db   PostgreSQL
func ParseURL(raw string) (Target, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return Target{}, fmt.Errorf("%w: empty connection string", ErrUnsupportedDatabaseURL)
	case strings.HasPrefix(s, "postgres://"), strings.HasPrefix(s, "postgresql://"):
		return Target{Dialect: Postgres, DSN: s}, nil
	case strings.HasPrefix(s, "sqlite://"):
		return sqliteTarget(strings.TrimPrefix(s, "sqlite://"))
	case strings.HasPrefix(s, "file:"):
		return sqliteTarget(strings.TrimPrefix(s, "file:"))
	case hasSQLiteExtension(s):
		return sqliteTarget(s)
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnsupportedDatabaseURL, s)
}

func hasSQLiteExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func sqliteTarget(path string) (Target, error) {
	path, _, _ = strings.Cut(path, "?")
	if path == "" {
		return Target{}, fmt.Errorf("%w: sqlite path is required", ErrUnsupportedDatabaseURL)
	}
	if path == memoryPath {
		return Target{Dialect: SQLite, DSN: memoryPath + "?" + sqlitePragmas}, nil
	}
	clean := filepath.Clean(path)
	return Target{
		Dialect: SQLite,
		DSN:     clean + "?" + sqlitePragmas + sqliteWAL,
		Path:    clean,
	}, nil
}

// DB is a database handle bound to its dialect
type DB struct {
	*sql.DB
	target Target
}

// Dialect returns the SQL dialect of the handle
func (db *DB) Dialect() Dialect {
	return db.target.Dialect
}

// Path returns the SQLite file backing the handle, or "" when there is none
func (db *DB) Path() string {
	return db.target.Path
}

// Close releases the handle; safe on nil
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// Open connects to the database named by cfg.URL and verifies it with a ping
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	target, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if target.Path != "" {
		if err := os.MkdirAll(filepath.Dir(target.Path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}

	sqlDB, err := sql.Open(target.Dialect.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s database: %w", target.Dialect.Name, err)
	}

	if target.Dialect == SQLite {
		// One writer; an in-memory database also lives and dies with its connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetMaxIdleConns(cfg.MinConns)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	return &DB{DB: sqlDB, target: target}, nil
}

// ValidateConnection checks if database connection is working
func ValidateConnection(ctx context.Context, db *DB) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database handle is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}
