package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chroma/internal/shared/version"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck godoc
// @Summary Health check
// @Description Liveness probe for load balancers and uptime monitors.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "chroma",
	})
}

// Version godoc
// @Summary Application version
// @Description Returns the running build's version string.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Current version"
// @Router /version [get]
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Current,
	})
}
