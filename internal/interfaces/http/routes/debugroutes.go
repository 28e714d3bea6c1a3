package routes

import (
	"github.com/gin-gonic/gin"

	"chroma/internal/interfaces/http/handlers"
	"chroma/internal/interfaces/http/middleware"
)

// DebugRouteConfig holds dependencies for the operator debug surface.
type DebugRouteConfig struct {
	DebugHandler       *handlers.DebugHandler
	AdminKeyMiddleware *middleware.AdminKeyMiddleware
}

// SetupDebugRoutes configures the admin-key-guarded debug endpoints. The
// caller registers these only when the debug capability flag is on; a build
// without the flag has no /debug routes at all, not hidden ones.
func SetupDebugRoutes(engine *gin.Engine, cfg *DebugRouteConfig) {
	debug := engine.Group("/debug")
	debug.Use(cfg.AdminKeyMiddleware.RequireAdminKey())
	{
		debug.GET("/identities/:id", cfg.DebugHandler.GetIdentity)
		debug.GET("/quota/:id", cfg.DebugHandler.GetQuotaState)
		debug.POST("/retention/sweep", cfg.DebugHandler.RunSweep)
	}
}
