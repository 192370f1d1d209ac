package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	embedded "github.com/offthegrid/offthegrid/internal/database/migrations"
	"github.com/offthegrid/offthegrid/internal/logging"
)

const downMarker = "_down_"

// Migration represents a database migration
type Migration struct {
	Version    string
	Filename   string
	SQLContent string
	Checksum   string
}

// calculateChecksum computes SHA256 checksum of migration content
func calculateChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// downFilename maps "001_create_people_table" to "001_down_create_people_table.sql"
func downFilename(version string) string {
	prefix, rest, ok := strings.Cut(version, "_")
	if !ok {
		return version + downMarker + ".sql"
	}
	return prefix + downMarker + rest + ".sql"
}

// MigrationRunner executes database migrations
type MigrationRunner struct {
	db     *DB
	fsys   fs.FS
	logger *logging.Logger
}

// NewMigrationRunner creates a runner over the embedded migrations for the handle's dialect
func NewMigrationRunner(db *DB, logger *logging.Logger) *MigrationRunner {
	// fs.Sub only fails on an invalid path and dialect names are fixed identifiers.
	sub, _ := fs.Sub(embedded.FS, db.Dialect().Name)
	return NewMigrationRunnerFS(db, sub, logger)
}

// NewMigrationRunnerFS creates a runner over an arbitrary migration set
func NewMigrationRunnerFS(db *DB, fsys fs.FS, logger *logging.Logger) *MigrationRunner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &MigrationRunner{
		db:     db,
		fsys:   fsys,
		logger: logger.WithComponent("migrations"),
	}
}

// RunMigrations executes all pending migrations in order
func (m *MigrationRunner) RunMigrations(ctx context.Context) error {
	m.logger.Migration("starting", logging.FieldDriver, m.db.Dialect().Name)
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		m.logger.DatabaseError("failed to create migrations table", err)
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := m.loadMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to load migration files: %w", err)
	}
	m.logger.Debug("migration: loaded files", logging.FieldTotal, len(migrations))

	executedMigrations, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	pendingCount := 0
	for _, migration := range migrations {
		if executedMigrations[migration.Version] {
			continue
		}
		pendingCount++
		m.logger.Migration("executing",
			logging.FieldMigration, migration.Version,
			logging.FieldChecksum, migration.Checksum[:16],
		)

		if err := m.executeMigration(ctx, migration); err != nil {
			m.logger.DatabaseError("migration failed", err, logging.FieldMigration, migration.Version)
			return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
		}
	}

	if err := m.verifyMigrationIntegrity(ctx, migrations); err != nil {
		return fmt.Errorf("migration integrity verification failed: %w", err)
	}

	m.logger.Migration("completed",
		"executed", pendingCount,
		logging.FieldDurationMs, time.Since(startTime).Milliseconds(),
	)
	return nil
}

// createMigrationsTable creates the table to track migration execution
func (m *MigrationRunner) createMigrationsTable(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			checksum VARCHAR(64) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_schema_migrations_executed_at
		ON schema_migrations (executed_at)`,
	}
	for _, stmt := range statements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadMigrationFiles loads the up migrations sorted by version
func (m *MigrationRunner) LoadMigrationFiles() ([]Migration, error) {
	return m.loadMigrationFiles()
}

func (m *MigrationRunner) loadMigrationFiles() ([]Migration, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(filename, ".sql") {
			continue
		}
		// Down migrations are only read on rollback
		if strings.Contains(filename, downMarker) {
			continue
		}

		content, err := fs.ReadFile(m.fsys, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		contentStr := string(content)
		migrations = append(migrations, Migration{
			Version:    strings.TrimSuffix(filename, ".sql"),
			Filename:   filename,
			SQLContent: contentStr,
			Checksum:   calculateChecksum(contentStr),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// GetExecutedMigrations retrieves the set of executed migration versions
func (m *MigrationRunner) GetExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	return m.getExecutedMigrations(ctx)
}

func (m *MigrationRunner) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	executed := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		executed[version] = true
	}

	return executed, rows.Err()
}

// executeMigration executes a single migration and records it in one transaction
func (m *MigrationRunner) executeMigration(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQLContent); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		m.db.Dialect().Rebind("INSERT INTO schema_migrations (version, checksum) VALUES (?, ?)"),
		migration.Version, migration.Checksum); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// verifyMigrationIntegrity verifies that executed migrations match their checksums
func (m *MigrationRunner) verifyMigrationIntegrity(ctx context.Context, migrations []Migration) error {
	byVersion := make(map[string]Migration, len(migrations))
	for _, mig := range migrations {
		byVersion[mig.Version] = mig
	}

	rows, err := m.db.QueryContext(ctx, "SELECT version, checksum FROM schema_migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query executed migrations: %w", err)
	}
	defer rows.Close()

	verified := 0
	for rows.Next() {
		var version, checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return fmt.Errorf("failed to scan executed migration: %w", err)
		}

		current, ok := byVersion[version]
		if !ok {
			return fmt.Errorf("migration %s found in database but not in migration set", version)
		}
		if current.Checksum != checksum {
			m.logger.Warn("migration: checksum mismatch",
				logging.FieldMigration, version,
				"recorded", checksum,
				"current", current.Checksum,
			)
			return fmt.Errorf("migration %s has been modified after execution (checksum mismatch)", version)
		}
		verified++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating executed migrations: %w", err)
	}

	m.logger.Debug("migration: integrity verified", logging.FieldTotal, verified)
	return nil
}

// RollbackLastMigration rolls back the highest executed migration
func (m *MigrationRunner) RollbackLastMigration(ctx context.Context) error {
	executedMigrations, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	if len(executedMigrations) == 0 {
		m.logger.Migration("no migrations to roll back")
		return nil
	}

	var lastMigration string
	for version := range executedMigrations {
		if version > lastMigration {
			lastMigration = version
		}
	}

	return m.rollbackMigration(ctx, lastMigration)
}

// RunDownMigrations rolls back every executed migration newer than targetVersion
func (m *MigrationRunner) RunDownMigrations(ctx context.Context, targetVersion string) error {
	m.logger.Migration("starting rollback", "target", targetVersion)
	startTime := time.Now()

	executedMigrations, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	versions := make([]string, 0, len(executedMigrations))
	for version := range executedMigrations {
		if version > targetVersion {
			versions = append(versions, version)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))

	for _, version := range versions {
		if err := m.rollbackMigration(ctx, version); err != nil {
			return err
		}
	}

	m.logger.Migration("rollback completed",
		"rolled_back", len(versions),
		"target", targetVersion,
		logging.FieldDurationMs, time.Since(startTime).Milliseconds(),
	)
	return nil
}

// rollbackMigration applies the down file of version and forgets the version
func (m *MigrationRunner) rollbackMigration(ctx context.Context, version string) error {
	filename := downFilename(version)
	content, err := fs.ReadFile(m.fsys, filename)
	if err != nil {
		return fmt.Errorf("failed to read rollback file %s: %w", filename, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute rollback SQL for %s: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx,
		m.db.Dialect().Rebind("DELETE FROM schema_migrations WHERE version = ?"), version); err != nil {
		return fmt.Errorf("failed to remove migration %s from tracking: %w", version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rollback transaction: %w", err)
	}

	m.logger.Migration("rolled back", logging.FieldMigration, version)
	return nil
}
