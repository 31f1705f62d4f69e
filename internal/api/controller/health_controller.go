package controller

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/response"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// HealthController reports whether the service and its dependencies are reachable.
type HealthController struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealthController creates a new HealthController.
func NewHealthController(checks map[string]Check) *HealthController {
	return &HealthController{checks: checks, timeout: 2 * time.Second}
}

// Health runs every check and answers 503 if any fails.
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), hc.timeout)
	defer cancel()

	results := gin.H{}
	healthy := true
	for name, check := range hc.checks {
		if err := check(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed", "check", name, "error", err)
			results[name] = "unavailable"
			healthy = false
			continue
		}
		results[name] = "ok"
	}

	if !healthy {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			response.NewResponse(response.StatusError, "Service unavailable", gin.H{"checks": results}))
		return
	}
	response.SuccessResponse(c, "", gin.H{"checks": results})
}

// IndexController describes the API.
type IndexController struct {
	name    string
	version string
	routes  func() gin.RoutesInfo
}

// NewIndexController creates a new IndexController. routes is evaluated per request.
func NewIndexController(name, version string, routes func() gin.RoutesInfo) *IndexController {
	return &IndexController{name: name, version: version, routes: routes}
}

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Index lists the registered endpoints.
func (ic *IndexController) Index(c *gin.Context) {
	routes := ic.routes()
	endpoints := make([]endpoint, 0, len(routes))
	for _, r := range routes {
		endpoints = append(endpoints, endpoint{Method: r.Method, Path: r.Path})
	}
	response.SuccessResponse(c, "", gin.H{"api": gin.H{
		"name":      ic.name,
		"version":   ic.version,
		"endpoints": endpoints,
	}})
}
