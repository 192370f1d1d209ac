package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/offthegrid/offthegrid/internal/logging"
	"github.com/offthegrid/offthegrid/internal/models"
	"github.com/offthegrid/offthegrid/internal/types"
)

// ErrPersonNotFound is returned when no row matches the requested id
var ErrPersonNotFound = errors.New("person not found")

const (
	// Performance warning threshold for a single batch write
	PerformanceWarningThreshold = 250 * time.Millisecond
	// Critical performance threshold for a single batch write
	PerformanceCriticalThreshold = time.Second

	// Rows per INSERT statement. 3 parameters per row stays well below
	// SQLite's 32766 and PostgreSQL's 65535 bind parameter limits.
	maxRowsPerStatement = 1000
)

// PeopleRepository reads and writes the people table
type PeopleRepository struct {
	db     *DB
	logger *logging.Logger
}

// NewPeopleRepository creates a repository over db
func NewPeopleRepository(db *DB, logger *logging.Logger) *PeopleRepository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &PeopleRepository{db: db, logger: logger.WithComponent("people")}
}

// CountPeople returns the number of stored people
func (r *PeopleRepository) CountPeople(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM people").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count people: %w", err)
	}
	return count, nil
}

// HasPeople reports whether at least one person is stored
func (r *PeopleRepository) HasPeople(ctx context.Context) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM people LIMIT 1").Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe people: %w", err)
	}
	return true, nil
}

// InsertPeople writes people in a single transaction. IDs on the input are
// ignored; storage assigns them. Returns the number of rows written.
func (r *PeopleRepository) InsertPeople(ctx context.Context, people []models.Person) (int64, error) {
	if len(people) == 0 {
		return 0, nil
	}

	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var written int64
	for offset := 0; offset < len(people); offset += maxRowsPerStatement {
		end := min(offset+maxRowsPerStatement, len(people))

		query, args := r.buildInsert(people[offset:end])
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert people: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		written += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logPerformanceMetrics("InsertPeople", time.Since(start), written)
	return written, nil
}

// buildInsert renders one multi-row INSERT for batch
func (r *PeopleRepository) buildInsert(batch []models.Person) (string, []any) {
	dialect := r.db.Dialect()
	values := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*3)

	for _, p := range batch {
		n := len(args)
		values = append(values, fmt.Sprintf("(%s, %s, %s)",
			dialect.Placeholder(n+1), dialect.Placeholder(n+2), dialect.Placeholder(n+3)))
		args = append(args, p.Name, p.Age, p.Hobby)
	}

	query := "INSERT INTO people (name, age, hobby) VALUES " + strings.Join(values, ", ")
	return query, args
}

// GetPersonByID retrieves a person by id
func (r *PeopleRepository) GetPersonByID(ctx context.Context, id int64) (*models.Person, error) {
	query := r.db.Dialect().Rebind(`SELECT id, name, age, hobby FROM people WHERE id = ?`)

	var p models.Person
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Age, &p.Hobby)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrPersonNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	return &p, nil
}

// ListPeople returns a page of people ordered by id
func (r *PeopleRepository) ListPeople(ctx context.Context, params types.ListPeopleParams) ([]models.Person, error) {
	params = params.Normalize()
	query := r.db.Dialect().Rebind(`SELECT id, name, age, hobby FROM people ORDER BY id LIMIT ? OFFSET ?`)

	rows, err := r.db.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := make([]models.Person, 0, params.Limit)
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Hobby); err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}

	return people, nil
}

// AgeRange returns the youngest and oldest stored ages, (0, 0) when empty
func (r *PeopleRepository) AgeRange(ctx context.Context) (int, int, error) {
	var youngest, oldest int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MIN(age), 0), COALESCE(MAX(age), 0) FROM people").Scan(&youngest, &oldest)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read age range: %w", err)
	}
	return youngest, oldest, nil
}

func (r *PeopleRepository) logPerformanceMetrics(operation string, duration time.Duration, rows int64) {
	args := []any{
		logging.FieldOperation, operation,
		logging.FieldRows, rows,
		logging.FieldDurationMs, duration.Milliseconds(),
	}

	switch {
	case duration > PerformanceCriticalThreshold:
		r.logger.Error("database: operation performance critical",
			append(args, "threshold_ms", PerformanceCriticalThreshold.Milliseconds())...)
	case duration > PerformanceWarningThreshold:
		r.logger.Warn("database: operation performance warning",
			append(args, "threshold_ms", PerformanceWarningThreshold.Milliseconds())...)
	default:
		r.logger.Debug("database: operation completed", args...)
	}
}
