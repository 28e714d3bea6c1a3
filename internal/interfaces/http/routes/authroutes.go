package routes

import (
	"github.com/gin-gonic/gin"

	"chroma/internal/interfaces/http/handlers"
	"chroma/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter
}

// SetupAuthRoutes configures anonymous authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/anonymous", cfg.RateLimiter.Limit(), cfg.AuthHandler.Authenticate)
	}
}
