package modulemanager

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/logger"
	"gorm.io/gorm"
)

// ModuleRegistry manages module registration and initialization
type ModuleRegistry struct {
	modules     map[string]Module
	mu          sync.RWMutex
	initialized bool
}

// NewRegistry creates an empty module registry
func NewRegistry() *ModuleRegistry {
	return &ModuleRegistry{modules: make(map[string]Module)}
}

// Registry is the global module registry
var Registry = NewRegistry()

// Register adds a module to the global registry
func Register(m Module) {
	Registry.Register(m)
}

// Register adds a module to the registry
func (r *ModuleRegistry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("module registered after initialization", "module", m.ID())
	}

	r.modules[m.ID()] = m
	logger.Debug("module registered", "module", m.ID(), "name", m.Name())
}

// LoadAll migrates and initializes all modules of the global registry
func LoadAll(db *gorm.DB, cfg *config.Config) error {
	return Registry.LoadAll(db, cfg)
}

// LoadAll migrates and initializes every registered module, core modules
// first, then by id.
func (r *ModuleRegistry) LoadAll(db *gorm.DB, cfg *config.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("module system already initialized")
		return nil
	}

	order := r.sorted()
	logger.Info("loading modules", "count", len(order))

	for i, module := range order {
		logger.Info("initializing module", "module", module.ID(), "step", fmt.Sprintf("%d/%d", i+1, len(order)))

		if err := module.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", module.Name(), err)
		}
		if err := module.Init(db, cfg); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", module.Name(), err)
		}
	}

	r.initialized = true
	return nil
}

// MigrateAll runs only the migrations of every registered module
func (r *ModuleRegistry) MigrateAll(db *gorm.DB) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, module := range r.sorted() {
		if err := module.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", module.Name(), err)
		}
	}
	return nil
}

// GetModule returns a module by ID
func (r *ModuleRegistry) GetModule(id string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, exists := r.modules[id]
	return module, exists
}

// ListModules returns all registered modules, core modules first
func (r *ModuleRegistry) ListModules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted()
}

// RegisterRoutes registers routes for all modules that implement RouteRegistrar
func (r *ModuleRegistry) RegisterRoutes(router *gin.Engine, routes *apiroutes.Registry) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, module := range r.sorted() {
		if registrar, ok := module.(RouteRegistrar); ok {
			logger.Debug("registering routes", "module", module.ID())
			registrar.RegisterRoutes(router, routes)
		}
	}
}

// HealthCheck collects the status of every module implementing
// HealthChecker. Other modules report unknown.
func (r *ModuleRegistry) HealthCheck(ctx context.Context) map[string]HealthStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make(map[string]HealthStatus, len(r.modules))
	for id, module := range r.modules {
		checker, ok := module.(HealthChecker)
		if !ok {
			statuses[id] = HealthStatus{Status: HealthStateUnknown, LastChecked: time.Now()}
			continue
		}
		statuses[id] = checker.HealthCheck(ctx)
	}
	return statuses
}

func (r *ModuleRegistry) sorted() []Module {
	modules := make([]Module, 0, len(r.modules))
	for _, module := range r.modules {
		modules = append(modules, module)
	}
	sort.Slice(modules, func(i, j int) bool {
		if modules[i].Core() != modules[j].Core() {
			return modules[i].Core()
		}
		return modules[i].ID() < modules[j].ID()
	})
	return modules
}
