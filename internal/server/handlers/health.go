// Package handlers contains the service-level HTTP handlers: health, database
// status, host statistics and the route listing.
package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/mantonx/filmadmin/internal/modules/modulemanager"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"
)

const serviceName = "filmadmin"

// Handler serves the ambient endpoints
type Handler struct {
	db      *gorm.DB
	modules *modulemanager.ModuleRegistry
	routes  *apiroutes.Registry
	started time.Time
}

// NewHandler creates the ambient handler
func NewHandler(db *gorm.DB, modules *modulemanager.ModuleRegistry, routes *apiroutes.Registry) *Handler {
	return &Handler{
		db:      db,
		modules: modules,
		routes:  routes,
		started: time.Now(),
	}
}

// HandleHealthCheck returns the basic health status of the service and its
// modules. Any unhealthy module turns the response into a 503.
func (h *Handler) HandleHealthCheck(c *gin.Context) {
	status := http.StatusOK
	overall := modulemanager.HealthStateHealthy

	modules := map[string]modulemanager.HealthStatus{}
	if h.modules != nil {
		modules = h.modules.HealthCheck(c.Request.Context())
	}
	for _, m := range modules {
		if m.Status == modulemanager.HealthStateUnhealthy {
			status = http.StatusServiceUnavailable
			overall = modulemanager.HealthStateUnhealthy
		}
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": serviceName,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"modules": modules,
	})
}

// HandleDBStatus checks and returns the database connection status
func (h *Handler) HandleDBStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		logger.Error("database health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "connected",
		"dialect":         h.db.Dialector.Name(),
		"connection_pool": database.Stats(h.db),
	})
}

// HandleSystem reports host CPU, memory and load. Metrics the platform
// cannot provide are omitted.
func (h *Handler) HandleSystem(c *gin.Context) {
	ctx := c.Request.Context()

	response := gin.H{
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"num_cpu":    runtime.NumCPU(),
	}

	if memStats, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		response["memory"] = gin.H{
			"total_bytes":     memStats.Total,
			"available_bytes": memStats.Available,
			"used_percent":    memStats.UsedPercent,
		}
	} else {
		logger.Debug("memory stats unavailable", "error", err)
	}

	// A zero interval compares against the previous call instead of sleeping.
	if cpuPercents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(cpuPercents) > 0 {
		response["cpu_percent"] = cpuPercents[0]
	} else if err != nil {
		logger.Debug("cpu stats unavailable", "error", err)
	}

	if loadStats, err := load.AvgWithContext(ctx); err == nil {
		response["load"] = gin.H{
			"load1":  loadStats.Load1,
			"load5":  loadStats.Load5,
			"load15": loadStats.Load15,
		}
	}

	var runtimeMem runtime.MemStats
	runtime.ReadMemStats(&runtimeMem)
	response["process"] = gin.H{
		"heap_alloc_bytes": runtimeMem.HeapAlloc,
		"sys_bytes":        runtimeMem.Sys,
		"num_gc":           runtimeMem.NumGC,
	}

	c.JSON(http.StatusOK, response)
}

// HandleRoutes lists every registered API route
func (h *Handler) HandleRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"routes":  h.routes.Get(),
	})
}
