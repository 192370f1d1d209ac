package database

import (
	"context"
	"fmt"
	"time"

	"github.com/offthegrid/offthegrid/internal/types"
)

const pingTimeout = 5 * time.Second

// HealthChecker implements database health checking with timing
type HealthChecker struct {
	db *DB
}

var _ types.HealthCheckerDatabase = (*HealthChecker)(nil)

// NewHealthChecker creates a new database health checker
func NewHealthChecker(db *DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name implements the types.HealthChecker interface
func (h *HealthChecker) Name() string {
	return "database"
}

// CheckHealth checks database connectivity with timing
func (h *HealthChecker) CheckHealth(ctx context.Context) types.HealthCheck {
	start := time.Now()
	err := h.Ping(ctx)

	healthCheck := types.HealthCheck{
		Status:         types.StatusHealthy,
		Timestamp:      start.Unix(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Details: map[string]string{
			"driver": h.db.Dialect().Name,
		},
	}
	if path := h.db.Path(); path != "" {
		healthCheck.Details["path"] = path
	}

	if err != nil {
		healthCheck.Status = types.StatusUnhealthy
		healthCheck.Error = fmt.Sprintf("database connection failed: %v", err)
	}

	return healthCheck
}

// Ping implements the types.HealthCheckerDatabase interface for simple connectivity test
func (h *HealthChecker) Ping(ctx context.Context) error {
	return ValidateConnection(ctx, h.db)
}
