package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Error kinds attached to logged database failures
const (
	KindConstraint = "constraint"
	KindConnection = "connection"
	KindDatabase   = "database"
)

// ErrorKind labels err for logs. It does not change how the error propagates.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConstraintViolation(err):
		return KindConstraint
	case IsConnectionError(err):
		return KindConnection
	default:
		return KindDatabase
	}
}

// IsConstraintViolation reports unique, foreign key, not null and check violations
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return primaryCode(sqliteErr) == sqlite3lib.SQLITE_CONSTRAINT
	}

	return false
}

// IsConnectionError checks if error is a connection-related error
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exception, class 53: insufficient resources
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "53")
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch primaryCode(sqliteErr) {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED, sqlite3lib.SQLITE_CANTOPEN:
			return true
		}
	}

	return false
}

// primaryCode strips the extended result code down to its primary code
func primaryCode(err *msqlite.Error) int {
	return err.Code() & 0xff
}
