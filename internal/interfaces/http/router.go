package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	identityUsecases "chroma/internal/application/identity/usecases"
	maintenanceUsecases "chroma/internal/application/maintenance/usecases"
	restorationUsecases "chroma/internal/application/restoration/usecases"
	statsUsecases "chroma/internal/application/stats/usecases"
	"chroma/internal/domain/quota"
	"chroma/internal/infrastructure/auth"
	"chroma/internal/infrastructure/cache"
	"chroma/internal/infrastructure/config"
	"chroma/internal/infrastructure/repository"
	"chroma/internal/infrastructure/restoration"
	"chroma/internal/interfaces/http/handlers"
	"chroma/internal/interfaces/http/middleware"
	"chroma/internal/interfaces/http/routes"
	shareddb "chroma/internal/shared/db"
	"chroma/internal/shared/logger"

	_ "chroma/docs"
)

// Router wires repositories, use cases, handlers, and middleware into a Gin
// engine. The debug handler is nil unless the debug capability is enabled in
// config; its routes are then never registered.
type Router struct {
	engine             *gin.Engine
	logger             logger.Interface
	authHandler        *handlers.AuthHandler
	colorizeHandler    *handlers.ColorizeHandler
	usageHandler       *handlers.UsageHandler
	statsHandler       *handlers.StatsHandler
	healthHandler      *handlers.HealthHandler
	debugHandler       *handlers.DebugHandler
	authMiddleware     *middleware.AuthMiddleware
	adminKeyMiddleware *middleware.AdminKeyMiddleware
	rateLimiter        *middleware.RateLimiter
}

// NewRouter creates the HTTP router with all dependencies. The Redis client
// may be nil: rate limiting and the stats cache then switch off, everything
// else works unchanged.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	identityRepo := repository.NewIdentityRepository(db, log)
	sessionRepo := repository.NewSessionRepository(db, log)
	stateRepo := repository.NewQuotaStateRepository(db, log)
	eventRepo := repository.NewUsageEventRepository(db, log)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.TokenExpHours)
	issuer := &credentialIssuerAdapter{jwtSvc}
	txMgr := shareddb.NewTransactionManager(db)
	tracker := quota.NewTracker(stateRepo, quota.NewLimits(cfg.Quota.DailyLimit))

	var providers []restoration.Provider
	if cfg.Restoration.Primary.Endpoint != "" {
		providers = append(providers, restoration.NewHTTPProvider(&cfg.Restoration.Primary, log))
	}
	if cfg.Restoration.Cloudinary.CloudName != "" {
		cloudinaryProvider, err := restoration.NewCloudinaryProvider(&cfg.Restoration.Cloudinary, log)
		if err != nil {
			log.Errorw("cloudinary provider unavailable, continuing without it", "error", err)
		} else {
			providers = append(providers, cloudinaryProvider)
		}
	}
	chain := restoration.NewChain(log, providers...)

	var summaryCache statsUsecases.SummaryCache
	if redisClient != nil {
		summaryCache = cache.NewRedisStatsCache(redisClient, log)
	}

	sessionRetention := time.Duration(cfg.Retention.SessionDays) * 24 * time.Hour
	eventRetention := time.Duration(cfg.Retention.UsageDays) * 24 * time.Hour
	callTimeout := time.Duration(cfg.Restoration.TimeoutSeconds) * time.Second

	authenticateUC := identityUsecases.NewAuthenticateUseCase(identityRepo, sessionRepo, tracker, issuer, txMgr, log)
	usageStatsUC := identityUsecases.NewGetUsageStatsUseCase(identityRepo, sessionRepo, tracker, log)
	colorizeUC := restorationUsecases.NewColorizeUseCase(identityRepo, eventRepo, tracker, chain, cfg.Restoration.MaxUploadBytes, callTimeout, log)
	summaryUC := statsUsecases.NewGetSummaryUseCase(identityRepo, eventRepo, summaryCache, log)
	sweepUC := maintenanceUsecases.NewRunRetentionSweepUseCase(sessionRepo, eventRepo, sessionRetention, eventRetention, log)

	r := &Router{
		engine:          engine,
		logger:          log,
		authHandler:     handlers.NewAuthHandler(authenticateUC, log),
		colorizeHandler: handlers.NewColorizeHandler(colorizeUC, cfg.Restoration.MaxUploadBytes, log),
		usageHandler:    handlers.NewUsageHandler(usageStatsUC, log),
		statsHandler:    handlers.NewStatsHandler(summaryUC, log),
		healthHandler:   handlers.NewHealthHandler(),
		authMiddleware:  middleware.NewAuthMiddleware(jwtSvc, log),
	}

	if cfg.Debug.Enabled {
		r.debugHandler = handlers.NewDebugHandler(identityRepo, stateRepo, sweepUC, log)
		r.adminKeyMiddleware = middleware.NewAdminKeyMiddleware(cfg.Debug.AdminKeyHash, auth.NewBcryptKeyHasher(0), log)
	}

	var limiterClient *redis.Client
	if cfg.RateLimit.Enabled {
		limiterClient = redisClient
	}
	r.rateLimiter = middleware.NewRateLimiter(limiterClient, cfg.RateLimit.RequestsPerMinute, time.Minute, log)

	return r
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.ErrorHandler())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.authHandler,
		RateLimiter: r.rateLimiter,
	})

	routes.SetupAPIRoutes(r.engine, &routes.APIRouteConfig{
		ColorizeHandler: r.colorizeHandler,
		UsageHandler:    r.usageHandler,
		AuthMiddleware:  r.authMiddleware,
		RateLimiter:     r.rateLimiter,
	})

	routes.SetupStatsRoutes(r.engine, &routes.StatsRouteConfig{
		StatsHandler:  r.statsHandler,
		HealthHandler: r.healthHandler,
	})

	if r.debugHandler != nil {
		routes.SetupDebugRoutes(r.engine, &routes.DebugRouteConfig{
			DebugHandler:       r.debugHandler,
			AdminKeyMiddleware: r.adminKeyMiddleware,
		})
	}
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
