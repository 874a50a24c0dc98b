package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weatherfav/internal/logging"
	"github.com/weatherfav/pkg/response"
)

// Check is a named readiness check.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// BuildInfo is reported by the liveness endpoint.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// HealthHandler serves liveness and readiness checks
type HealthHandler struct {
	build   BuildInfo
	checks  []Check
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(build BuildInfo, checks ...Check) *HealthHandler {
	return &HealthHandler{
		build:   build,
		checks:  checks,
		timeout: 3 * time.Second,
	}
}

// Health reports that the process is up
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	response.SuccessWith(c, http.StatusOK, "ok", gin.H{
		"version":    h.build.Version,
		"commit":     h.build.Commit,
		"build_time": h.build.BuildTime,
		"time":       time.Now().Unix(),
	})
}

// DBCheck pings every dependency and fails with 503 on the first error
// GET /api/db-check
func (h *HealthHandler) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	checked := make([]string, 0, len(h.checks))
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			logging.Error("readiness check %s failed: %v", check.Name, err)
			response.ServiceUnavailable(c, check.Name+" connection failed")
			return
		}
		checked = append(checked, check.Name)
	}

	response.SuccessWith(c, http.StatusOK, "database connection successful", gin.H{"checks": checked})
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/db-check", h.DBCheck)
}
