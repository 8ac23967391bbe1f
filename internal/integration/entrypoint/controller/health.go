package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthController handles health check endpoints.
type HealthController struct {
	checks []HealthCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(checks ...HealthCheck) *HealthController {
	return &HealthController{checks: checks}
}

// Check handles GET /health requests.
// It returns 503 when any dependency is down.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:     "ok",
		Components: make(map[string]string, len(h.checks)),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			response.Components[check.Name] = "down"
			response.Status = "degraded"
			continue
		}
		response.Components[check.Name] = "up"
	}

	status := http.StatusOK
	if response.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}
