package routes

import (
	"github.com/gin-gonic/gin"

	"chroma/internal/interfaces/http/handlers"
)

// StatsRouteConfig holds dependencies for the public read-only routes.
type StatsRouteConfig struct {
	StatsHandler  *handlers.StatsHandler
	HealthHandler *handlers.HealthHandler
}

// SetupStatsRoutes configures unauthenticated statistics and health routes.
func SetupStatsRoutes(engine *gin.Engine, cfg *StatsRouteConfig) {
	engine.GET("/health", cfg.HealthHandler.HealthCheck)
	engine.GET("/version", cfg.HealthHandler.Version)

	stats := engine.Group("/stats")
	{
		stats.GET("/summary", cfg.StatsHandler.GetSummary)
	}
}
