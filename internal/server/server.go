// Package server provides HTTP server functionality for filmadmin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/api"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/mantonx/filmadmin/internal/middleware"
	"github.com/mantonx/filmadmin/internal/modules/modulemanager"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Server owns the router and the HTTP listener
type Server struct {
	cfg     *config.Config
	db      *gorm.DB
	modules *modulemanager.ModuleRegistry
	routes  *apiroutes.Registry
	router  *gin.Engine
}

// New loads every module of the registry and builds the router
func New(cfg *config.Config, db *gorm.DB, modules *modulemanager.ModuleRegistry) (*Server, error) {
	if err := modules.LoadAll(db, cfg); err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}
	logModuleStatus(modules)

	routes := apiroutes.New()
	router, err := SetupRouter(cfg, db, modules, routes)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:     cfg,
		db:      db,
		modules: modules,
		routes:  routes,
		router:  router,
	}, nil
}

// SetupRouter configures and returns the main router. Modules must already
// be initialized.
func SetupRouter(cfg *config.Config, db *gorm.DB, modules *modulemanager.ModuleRegistry, routes *apiroutes.Registry) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(api.ErrorMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	if cfg.Server.EnableCORS {
		r.Use(middleware.CORS())
	}

	setupRoutes(r, db, modules, routes)
	return r, nil
}

// Router returns the configured router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Routes returns the registered API routes
func (s *Server) Routes() []apiroutes.APIRoute {
	return s.routes.Get()
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
	srv := &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		MaxHeaderBytes: s.cfg.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}

// logModuleStatus logs the loaded modules
func logModuleStatus(modules *modulemanager.ModuleRegistry) {
	for _, module := range modules.ListModules() {
		logger.Info("module loaded", "id", module.ID(), "name", module.Name(), "core", module.Core())
	}
}
