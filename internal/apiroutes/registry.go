// Package apiroutes keeps a listing of the HTTP routes the server exposes,
// served at GET /api and printed by `filmadmin routes`.
package apiroutes

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// APIRoute defines the structure for an API route entry.
type APIRoute struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

// Registry is a concurrency-safe list of routes
type Registry struct {
	mu     sync.RWMutex
	routes []APIRoute
}

// New creates an empty registry
func New() *Registry {
	return &Registry{routes: make([]APIRoute, 0)}
}

// Register adds a new route to the registry.
func (r *Registry) Register(path, method, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, APIRoute{
		Path:        path,
		Method:      method,
		Description: description,
	})
}

// Handle registers handler on group and records the route.
func (r *Registry) Handle(group *gin.RouterGroup, method, path, description string, handler gin.HandlerFunc) {
	group.Handle(method, path, handler)
	full := group.BasePath()
	if path != "" && path != "/" {
		full = joinPath(full, path)
	}
	r.Register(full, method, description)
}

// Get retrieves a copy of the current routes sorted by path then method.
func (r *Registry) Get() []APIRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]APIRoute, len(r.routes))
	copy(routes, r.routes)
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

// Len returns the number of registered routes
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

func joinPath(base, path string) string {
	switch {
	case base == "" || base == "/":
		if path[0] != '/' {
			return "/" + path
		}
		return path
	case base[len(base)-1] == '/' && path[0] == '/':
		return base + path[1:]
	case base[len(base)-1] != '/' && path[0] != '/':
		return base + "/" + path
	default:
		return base + path
	}
}
