// Package main provides the entry point for the offthegrid service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/offthegrid/offthegrid/internal/bootstrap"
	"github.com/offthegrid/offthegrid/internal/config"
	"github.com/offthegrid/offthegrid/internal/logging"
)

const serviceName = "offthegrid"

var (
	// Build information (set during build)
	Version   = "dev"
	BuildTime = ""
)

func main() {
	showVersion := flag.Bool("version", false, "Print build information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(versionString())
		return
	}

	// Initialize configuration first
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger, closer, err := logging.New(appConfig.Logging, serviceName, Version)
	if err != nil {
		log.Fatalf("FATAL: Failed to set up logging: %v", err)
	}
	defer closer.Close()

	logStartupEvents(logger, appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, logger); err != nil {
		logger.Error("startup failed", logging.FieldError, err)
		closer.Close()
		os.Exit(1)
	}
}

// run performs startup initialization and reports the outcome
func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	start := time.Now()

	result, err := bootstrap.Run(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Startup("initialization completed",
		"skipped", result.Skipped,
		logging.FieldRows, result.Inserted,
		logging.FieldDurationMs, time.Since(start).Milliseconds(),
	)
	return nil
}

func versionString() string {
	if BuildTime == "" {
		return fmt.Sprintf("%s %s", serviceName, Version)
	}
	return fmt.Sprintf("%s %s (built %s)", serviceName, Version, BuildTime)
}

// logStartupEvents logs the effective configuration
func logStartupEvents(logger *logging.Logger, cfg *config.Config) {
	logger.Startup("offthegrid starting up")

	logger.Startup("configuration loaded successfully",
		"environment", cfg.Application.Environment,
		"log_level", cfg.Logging.Level,
		"seed_enabled", cfg.Seed.Enabled,
		"seed_count", cfg.Seed.Count,
		"seed_batch_size", cfg.Seed.BatchSize,
	)
}
