// Package modulemanager provides interfaces for the module system
package modulemanager

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/config"
	"gorm.io/gorm"
)

// Module defines the interface that all modules must implement
type Module interface {
	ID() string                                 // Unique identifier for the module
	Name() string                               // Display name for the module
	Core() bool                                 // Whether this is a core module
	Migrate(db *gorm.DB) error                  // Run database migrations
	Init(db *gorm.DB, cfg *config.Config) error // Initialize the module
}

// RouteRegistrar is an optional interface for modules that need to register routes
type RouteRegistrar interface {
	RegisterRoutes(router *gin.Engine, routes *apiroutes.Registry)
}

// HealthChecker is an optional interface for modules that can report health status
type HealthChecker interface {
	// HealthCheck returns the current health status of the module
	HealthCheck(ctx context.Context) HealthStatus
}

// HealthStatus represents the health of a module
type HealthStatus struct {
	Status      HealthState            `json:"status"`
	Message     string                 `json:"message,omitempty"`
	LastChecked time.Time              `json:"last_checked"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// HealthState represents the state of a module's health
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
	HealthStateUnknown   HealthState = "unknown"
)
