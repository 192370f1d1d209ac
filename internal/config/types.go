// Package config provides configuration types and structures for the offthegrid service.
package config

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig
	Logging     LoggingConfig
	Seed        SeedConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL" envDefault:"sqlite://database.db"` // sqlite://path or postgres://...
	MaxConns int    `env:"DB_MAX_CONNECTIONS" envDefault:"10"`             // Maximum open connections (postgres only)
	MinConns int    `env:"DB_MIN_CONNS" envDefault:"2"`                    // Idle connections kept (postgres only)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `env:"LOG_LEVEL" envDefault:"info"`  // Log level (debug, info, warn, error)
	Format    string `env:"LOG_FORMAT" envDefault:"json"` // Log format (json, text)
	File      string `env:"LOG_FILE"`                     // Optional rotating log file
	MaxSizeMB int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"10"`
	MaxFiles  int    `env:"LOG_FILE_MAX_FILES" envDefault:"5"`
}

// SeedConfig controls the startup seed of the people table
type SeedConfig struct {
	Enabled    bool   `env:"SEED_ENABLED" envDefault:"true"`
	Count      int    `env:"SEED_COUNT" envDefault:"1000"`
	BatchSize  int    `env:"SEED_BATCH_SIZE" envDefault:"100"`
	RandomSeed uint64 `env:"SEED_RANDOM_SEED" envDefault:"0"` // 0 seeds from the clock
}

// ApplicationConfig holds application-specific configuration
type ApplicationConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production, test
}
