package catalogmodule

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/api"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/service"
	"github.com/mantonx/filmadmin/internal/modules/modulemanager"
	"github.com/mantonx/filmadmin/internal/validation"
	"gorm.io/gorm"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the catalog module
	ModuleID = "system.catalog"

	// ModuleName is the display name for the catalog module
	ModuleName = "Catalog Manager"
)

// ErrNotInitialized is returned when the module is used before Init
var ErrNotInitialized = errors.New("catalog module not initialized")

// Module implements the movie catalog as a module
type Module struct {
	db        *gorm.DB
	gateway   *repository.Gateway
	validator *validation.Validator
	services  *service.Services
	handler   *api.Handler
}

// Register registers the catalog module with the module system
func Register() {
	modulemanager.Register(New())
}

// New creates an uninitialized catalog module
func New() *Module {
	return &Module{}
}

// ID returns the unique module identifier
func (m *Module) ID() string {
	return ModuleID
}

// Name returns the module display name
func (m *Module) Name() string {
	return ModuleName
}

// Core returns whether this is a core module
func (m *Module) Core() bool {
	return true
}

// Migrate creates the catalog tables
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("migrating catalog schema")
	return database.Migrate(db)
}

// Init builds the catalog services. Incoming dates are parsed with the
// layouts from cfg, and the module follows later config reloads.
func (m *Module) Init(db *gorm.DB, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	layouts := cfg.Catalog.DateLayouts
	if len(layouts) == 0 {
		layouts = config.DefaultDateLayouts()
	}

	m.db = db
	m.gateway = repository.NewGateway(db, cfg.Database.TxTimeout)
	m.validator = validation.New(layouts...)
	m.services = service.NewServices(m.gateway, m.validator)
	m.handler = api.NewHandler(m.services)

	config.AddWatcher(m.OnConfigChange)

	logger.Info("catalog module initialized",
		"date_layouts", layouts,
		"tx_timeout", cfg.Database.TxTimeout,
	)
	return nil
}

// OnConfigChange applies reloaded catalog settings. The transaction timeout
// and connection settings take effect on restart only.
func (m *Module) OnConfigChange(oldConfig, newConfig *config.Config) {
	if m.validator == nil || newConfig == nil {
		return
	}
	if slices.Equal(oldConfig.Catalog.DateLayouts, newConfig.Catalog.DateLayouts) {
		return
	}
	m.validator.SetDateLayouts(newConfig.Catalog.DateLayouts...)
	logger.Info("catalog date layouts changed", "date_layouts", m.validator.DateLayouts())
}

// Services returns the catalog services, or nil before Init
func (m *Module) Services() *service.Services {
	return m.services
}

// RegisterRoutes registers the catalog HTTP routes
func (m *Module) RegisterRoutes(router *gin.Engine, routes *apiroutes.Registry) {
	if m.handler == nil {
		logger.Error("catalog routes requested before init", "error", ErrNotInitialized)
		return
	}
	api.RegisterRoutes(router, m.handler, routes)
}

// HealthCheck pings the database and reports transaction counters
func (m *Module) HealthCheck(ctx context.Context) modulemanager.HealthStatus {
	status := modulemanager.HealthStatus{
		Status:      modulemanager.HealthStateHealthy,
		LastChecked: time.Now(),
	}

	if m.db == nil {
		status.Status = modulemanager.HealthStateUnknown
		status.Message = ErrNotInitialized.Error()
		return status
	}

	if err := database.HealthCheck(ctx, m.db); err != nil {
		status.Status = modulemanager.HealthStateUnhealthy
		status.Message = err.Error()
		return status
	}

	status.Details = map[string]interface{}{
		"transactions": m.gateway.TransactionStats(),
	}
	return status
}
