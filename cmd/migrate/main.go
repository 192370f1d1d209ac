// Package main provides CLI for manual database migration management.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/offthegrid/offthegrid/internal/config"
	"github.com/offthegrid/offthegrid/internal/database"
	"github.com/offthegrid/offthegrid/internal/logging"
)

func main() {
	var (
		action = flag.String("action", "up", "Migration action: up, down, status, rollback-last")
		target = flag.String("target", "", "Target version for down migration")
		lang   = flag.String("lang", "en", "Language tag used to format counts in status output")
		help   = flag.Bool("help", false, "Show help information")
	)
	flag.Parse()

	if *help {
		showHelp(os.Stdout)
		return
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger, closer, err := logging.New(appConfig.Logging, "offthegrid-migrate", "")
	if err != nil {
		log.Fatalf("FATAL: Failed to set up logging: %v", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, appConfig.Database)
	if err != nil {
		log.Fatalf("FATAL: Failed to open database: %v", err)
	}
	defer db.Close()

	logger.Database("connection established", logging.FieldDriver, db.Dialect().Name)

	if err := runAction(ctx, os.Stdout, db, logger, *action, *target, *lang); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// runAction executes one migration action against db
func runAction(ctx context.Context, w io.Writer, db *database.DB, logger *logging.Logger, action, target, lang string) error {
	runner := database.NewMigrationRunner(db, logger)

	switch action {
	case "up":
		if err := runner.RunMigrations(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(w, "Migrations completed successfully")

	case "down":
		if target == "" {
			return fmt.Errorf("-target version required for down migration (use -target=none to roll back everything)")
		}
		if target == "none" {
			target = ""
		}
		if err := runner.RunDownMigrations(ctx, target); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		fmt.Fprintln(w, "Rollback completed successfully")

	case "rollback-last":
		if err := runner.RollbackLastMigration(ctx); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		fmt.Fprintln(w, "Last migration rolled back successfully")

	case "status":
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("invalid -lang %q: %w", lang, err)
		}
		return showMigrationStatus(ctx, w, db, runner, message.NewPrinter(tag))

	default:
		return fmt.Errorf("unknown action: %s", action)
	}
	return nil
}

func showHelp(w io.Writer) {
	fmt.Fprintln(w, "Migration CLI for offthegrid")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  go run ./cmd/migrate [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -action string")
	fmt.Fprintln(w, "        Migration action: up, down, status, rollback-last (default \"up\")")
	fmt.Fprintln(w, "  -target string")
	fmt.Fprintln(w, "        Target version for down migration; \"none\" rolls back everything")
	fmt.Fprintln(w, "  -lang string")
	fmt.Fprintln(w, "        Language tag used to format counts (default \"en\")")
	fmt.Fprintln(w, "  -help")
	fmt.Fprintln(w, "        Show help information")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "The database is selected with DATABASE_URL (sqlite://path or postgres://...).")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  go run ./cmd/migrate -action=up")
	fmt.Fprintln(w, "  go run ./cmd/migrate -action=status -lang=de")
	fmt.Fprintln(w, "  go run ./cmd/migrate -action=down -target=001_create_people_table")
	fmt.Fprintln(w, "  go run ./cmd/migrate -action=rollback-last")
}

func showMigrationStatus(ctx context.Context, w io.Writer, db *database.DB, runner *database.MigrationRunner, p *message.Printer) error {
	executedMigrations, err := runner.GetExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get migration status (run -action=up first?): %w", err)
	}

	migrationFiles, err := runner.LoadMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to load migration files: %w", err)
	}

	fmt.Fprintln(w, "Migration Status")
	fmt.Fprintln(w, "================")

	health := database.NewHealthChecker(db).CheckHealth(ctx)
	fmt.Fprintf(w, "Database: %s (%s, %dms)\n", health.Status, health.Details["driver"], health.ResponseTimeMs)
	if health.Error != "" {
		fmt.Fprintf(w, "  error: %s\n", health.Error)
	}

	executed, pending := 0, 0
	for _, migration := range migrationFiles {
		if executedMigrations[migration.Version] {
			executed++
		} else {
			pending++
		}
	}

	if executed == 0 {
		fmt.Fprintln(w, "\nNo migrations have been executed yet.")
	} else {
		fmt.Fprintf(w, "\nExecuted migrations (%d):\n", executed)
		for _, migration := range migrationFiles {
			if executedMigrations[migration.Version] {
				fmt.Fprintf(w, "  ✓ %s\n", migration.Version)
			}
		}
	}

	if pending > 0 {
		fmt.Fprintf(w, "\nPending migrations (%d):\n", pending)
		for _, migration := range migrationFiles {
			if !executedMigrations[migration.Version] {
				fmt.Fprintf(w, "  ○ %s (%s)\n", migration.Version, migration.Filename)
			}
		}
	} else {
		fmt.Fprintln(w, "\nAll migrations are up to date!")
	}

	// The people table only exists once the first migration ran.
	if pending == 0 {
		people := database.NewPeopleRepository(db, nil)
		count, err := people.CountPeople(ctx)
		if err != nil {
			return err
		}
		youngest, oldest, err := people.AgeRange(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "")
		p.Fprintf(w, "People: %d\n", count)
		if count > 0 {
			fmt.Fprintf(w, "Ages: %d-%d\n", youngest, oldest)
		}
	}

	fmt.Fprintln(w, "================")
	return nil
}
