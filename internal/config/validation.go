package config

import (
	"strconv"
	"strings"
)

var (
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"json", "text"}
	validEnvironments = []string{"development", "staging", "production", "test"}
)

// Validate validates the configuration and returns any errors
func Validate(config *Config) error {
	var errors ValidationErrors

	errors = append(errors, validateDatabaseConfig(&config.Database)...)
	errors = append(errors, validateLoggingConfig(&config.Logging)...)
	errors = append(errors, validateSeedConfig(&config.Seed)...)
	errors = append(errors, validateApplicationConfig(&config.Application)...)

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// validateDatabaseConfig validates database configuration
func validateDatabaseConfig(db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(db.URL) == "" {
		errors = append(errors, ValidationError{
			Field:   "DATABASE_URL",
			Message: "database connection string is required",
		})
	}

	if db.MaxConns <= 0 {
		errors = append(errors, ValidationError{
			Field:   "DB_MAX_CONNECTIONS",
			Value:   strconv.Itoa(db.MaxConns),
			Message: "must be positive",
		})
	}

	if db.MinConns < 0 || db.MinConns > db.MaxConns {
		errors = append(errors, ValidationError{
			Field:   "DB_MIN_CONNS",
			Value:   strconv.Itoa(db.MinConns),
			Message: "must be between 0 and DB_MAX_CONNECTIONS",
		})
	}

	return errors
}

// validateLoggingConfig validates logging configuration
func validateLoggingConfig(logging *LoggingConfig) ValidationErrors {
	var errors ValidationErrors

	if !oneOf(logging.Level, validLogLevels) {
		errors = append(errors, ValidationError{
			Field:   "LOG_LEVEL",
			Value:   logging.Level,
			Message: "must be one of: " + strings.Join(validLogLevels, ", "),
		})
	}

	if !oneOf(logging.Format, validLogFormats) {
		errors = append(errors, ValidationError{
			Field:   "LOG_FORMAT",
			Value:   logging.Format,
			Message: "must be one of: " + strings.Join(validLogFormats, ", "),
		})
	}

	if logging.File != "" {
		if logging.MaxSizeMB <= 0 {
			errors = append(errors, ValidationError{
				Field:   "LOG_FILE_MAX_SIZE_MB",
				Value:   strconv.Itoa(logging.MaxSizeMB),
				Message: "must be positive when LOG_FILE is set",
			})
		}
		if logging.MaxFiles < 0 {
			errors = append(errors, ValidationError{
				Field:   "LOG_FILE_MAX_FILES",
				Value:   strconv.Itoa(logging.MaxFiles),
				Message: "must not be negative",
			})
		}
	}

	return errors
}

// validateSeedConfig validates seed configuration
func validateSeedConfig(seed *SeedConfig) ValidationErrors {
	var errors ValidationErrors

	if seed.Count < 0 {
		errors = append(errors, ValidationError{
			Field:   "SEED_COUNT",
			Value:   strconv.Itoa(seed.Count),
			Message: "must not be negative",
		})
	}

	if seed.BatchSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "SEED_BATCH_SIZE",
			Value:   strconv.Itoa(seed.BatchSize),
			Message: "must be positive",
		})
	}

	return errors
}

// validateApplicationConfig validates application configuration
func validateApplicationConfig(app *ApplicationConfig) ValidationErrors {
	if oneOf(app.Environment, validEnvironments) {
		return nil
	}
	return ValidationErrors{{
		Field:   "ENVIRONMENT",
		Value:   app.Environment,
		Message: "must be one of: " + strings.Join(validEnvironments, ", "),
	}}
}

func oneOf(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
