// Package bootstrap runs the one-shot startup initialization: open the
// database, bring its schema up to date and seed an empty people table.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offthegrid/offthegrid/internal/config"
	"github.com/offthegrid/offthegrid/internal/database"
	"github.com/offthegrid/offthegrid/internal/logging"
	"github.com/offthegrid/offthegrid/internal/seed"
)

// Run initializes the database described by cfg. The connection is scoped
// to the call and closed on every exit path. Any error means startup failed.
func Run(ctx context.Context, cfg *config.Config, logger *logging.Logger) (seed.Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithRunID(uuid.NewString())

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logger.DatabaseError("failed to open database", err)
		return seed.Result{}, fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.DatabaseError("failed to close database", err)
		}
	}()
	logger.Database("connection established",
		logging.FieldDriver, db.Dialect().Name,
		logging.FieldDatabase, db.Path(),
	)

	if err := database.NewMigrationRunner(db, logger).RunMigrations(ctx); err != nil {
		return seed.Result{}, fmt.Errorf("migrate database: %w", err)
	}

	if !cfg.Seed.Enabled {
		logger.Seed("disabled by configuration")
		return seed.Result{}, nil
	}

	seeder := seed.New(
		database.NewPeopleRepository(db, logger),
		seed.NewSeededGenerator(cfg.Seed.RandomSeed),
		logger,
		seed.WithBatchSize(cfg.Seed.BatchSize),
	)

	result, err := seeder.Initialize(ctx, cfg.Seed.Count)
	if err != nil {
		return result, fmt.Errorf("seed database: %w", err)
	}
	return result, nil
}
