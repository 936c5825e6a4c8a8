package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urbanstyle/support-assistant/internal/health"
	"github.com/urbanstyle/support-assistant/internal/models"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HandleHealth reports per-dependency health. Disabled features show
// as disabled, not unhealthy, so a credential-less demo still reports
// a sensible status.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	overall := h.checker.Check(c.Request.Context())

	services := make(map[string]string, len(overall.Services))
	for _, s := range overall.Services {
		services[s.Name] = s.Status
	}

	code := http.StatusOK
	if overall.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, models.HealthResponse{
		Status:    overall.Status,
		Service:   "support-assistant",
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  services,
		Detail:    overall.Services,
	})
}
