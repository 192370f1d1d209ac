package types

import "context"

// Health check statuses
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthCheck represents the health check result
type HealthCheck struct {
	Status         string            `json:"status"`
	Timestamp      int64             `json:"timestamp"`
	ResponseTimeMs int64             `json:"response_time_ms"`
	Error          string            `json:"error,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
}

// Healthy reports whether the check passed
func (h HealthCheck) Healthy() bool {
	return h.Status == StatusHealthy
}

// HealthChecker defines the interface for health check implementations
type HealthChecker interface {
	Name() string
	CheckHealth(ctx context.Context) HealthCheck
}

// HealthCheckerDatabase defines additional interface for database-specific health checks
type HealthCheckerDatabase interface {
	HealthChecker
	Ping(ctx context.Context) error
}
