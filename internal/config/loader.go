// Package config provides configuration loading and environment management
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s='%s': %s", e.Field, e.Value, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("configuration validation errors:\n")
	for _, err := range ve {
		fmt.Fprintf(&b, "  - %s\n", err.Error())
	}
	return b.String()
}

// Load reads an optional .env file, parses the environment and validates the result
func Load() (*Config, error) {
	// 1. Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	return LoadFromEnvironment()
}

// LoadFromEnvironment parses configuration from the process environment only
func LoadFromEnvironment() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	config := &Config{}
	// Parsing an empty environment only applies envDefault tags and cannot fail.
	_ = env.ParseWithOptions(config, env.Options{Environment: map[string]string{}})
	return config
}
