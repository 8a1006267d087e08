package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/modules/modulemanager"
	"github.com/mantonx/filmadmin/internal/server/handlers"
	"gorm.io/gorm"
)

// setupRoutes registers the ambient endpoints, then every module's routes.
func setupRoutes(r *gin.Engine, db *gorm.DB, modules *modulemanager.ModuleRegistry, routes *apiroutes.Registry) {
	h := handlers.NewHandler(db, modules, routes)

	apiGroup := r.Group("/api")
	routes.Handle(apiGroup, http.MethodGet, "", "Lists all available API endpoints.", h.HandleRoutes)
	routes.Handle(apiGroup, http.MethodGet, "/health", "Service and module health.", h.HandleHealthCheck)
	routes.Handle(apiGroup, http.MethodGet, "/db-status", "Database connectivity and pool statistics.", h.HandleDBStatus)
	routes.Handle(apiGroup, http.MethodGet, "/system", "Host CPU, memory and load.", h.HandleSystem)

	modules.RegisterRoutes(r, routes)
}
