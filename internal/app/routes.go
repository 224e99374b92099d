package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/customer-directory/internal/domain"
	"github.com/simp-lee/customer-directory/internal/pkg"
)

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules    []Module
	Repository domain.CustomerRepository
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	// Health check.
	r.GET("/health", healthHandler(deps.Repository))

	// API routes.
	api := r.Group("/api/v1")
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api)
	}

	// NoRoute handler.
	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler returns a handler that reports snapshot status. The
// snapshot is loaded once at startup, so a present repository with records
// means the service can answer lookups.
func healthHandler(repo domain.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if repo == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"components": gin.H{
					"snapshot": "error",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"components": gin.H{
				"snapshot": "ok",
			},
			"customers": repo.Count(),
		})
	}
}

// noRouteHandler returns a handler that answers unknown paths with the
// standard JSON error body.
func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		pkg.NotFound(c, "Resource")
	}
}
