package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"chroma/internal/infrastructure/config"
	"chroma/internal/infrastructure/database"
	"chroma/internal/infrastructure/migration"
	httpRouter "chroma/internal/interfaces/http"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/version"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Chroma colorization API server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server",
		"environment", env,
		"version", version.Current,
		"auto_migrate", autoMigrate)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := handleMigrations(env, cfg, log); err != nil {
		log.Fatalw("migration handling failed", "error", err)
	}

	redisClient := initRedis(cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	router := httpRouter.NewRouter(database.Get(), redisClient, cfg, log)
	router.SetupRoutes(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"debug_endpoints", cfg.Debug.Enabled)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// initRedis connects the optional Redis client. No configured host means no
// client: rate limiting and the stats cache simply stay off.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if cfg.Redis.Host == "" {
		log.Infow("redis not configured, rate limiting and stats cache disabled")
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	return redisClient
}

func handleMigrations(environment string, cfg *config.Config, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}

		log.Infow("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	log.Infow("checking migration status")

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		log.Warnw("failed to get migration scripts path", "error", err)
		return nil
	}

	strategy := migration.NewGooseStrategy(scriptsPath, cfg.Database.Driver)
	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		version, err := gooseStrategy.GetVersion(database.Get())
		if err != nil {
			log.Warnw("failed to check migration status", "error", err)
		} else {
			log.Infow("current migration version", "version", version)
		}
	}

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
