package database

import (
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between supported backends
type Dialect struct {
	Name   string // directory of embedded migrations
	Driver string // database/sql driver name
}

var (
	// SQLite is the file-backed default, served by modernc.org/sqlite
	SQLite = Dialect{Name: "sqlite", Driver: "sqlite"}
	// Postgres is served by the pgx stdlib driver
	Postgres = Dialect{Name: "postgres", Driver: "pgx"}
)

// Placeholder returns the n-th (1-based) bind parameter marker
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Rebind rewrites '?' markers into the dialect's placeholder style.
// Queries passed here must not contain '?' inside string literals.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
