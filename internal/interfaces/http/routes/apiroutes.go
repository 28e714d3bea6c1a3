package routes

import (
	"github.com/gin-gonic/gin"

	"chroma/internal/interfaces/http/handlers"
	"chroma/internal/interfaces/http/middleware"
)

// APIRouteConfig holds dependencies for the authenticated client API.
type APIRouteConfig struct {
	ColorizeHandler *handlers.ColorizeHandler
	UsageHandler    *handlers.UsageHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
}

// SetupAPIRoutes configures the credential-protected client endpoints.
func SetupAPIRoutes(engine *gin.Engine, cfg *APIRouteConfig) {
	// Rate limiting runs before credential verification: cheap rejection
	// first, and a flood of bad tokens never reaches the verifier.
	engine.POST("/colorize", cfg.RateLimiter.Limit(), cfg.AuthMiddleware.RequireAuth(), cfg.ColorizeHandler.Colorize)
	engine.GET("/usage", cfg.AuthMiddleware.RequireAuth(), cfg.UsageHandler.GetUsage)
}
