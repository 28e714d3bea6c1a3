package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	maintenanceUsecases "chroma/internal/application/maintenance/usecases"
	"chroma/internal/infrastructure/config"
	"chroma/internal/infrastructure/database"
	"chroma/internal/infrastructure/repository"
	"chroma/internal/shared/goroutine"
	"chroma/internal/shared/logger"
)

// The sweeper prunes expired sessions and usage events on a fixed interval.
// It runs as its own process so a slow delete never competes with request
// handling for database time.

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting retention sweeper", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSessionRepository(database.Get(), log)
	eventRepo := repository.NewUsageEventRepository(database.Get(), log)

	sweepUC := maintenanceUsecases.NewRunRetentionSweepUseCase(
		sessionRepo,
		eventRepo,
		time.Duration(cfg.Retention.SessionDays)*24*time.Hour,
		time.Duration(cfg.Retention.UsageDays)*24*time.Hour,
		log,
	)

	interval := time.Duration(cfg.Retention.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	log.Infow("running initial retention sweep")
	if _, err := sweepUC.Execute(context.Background()); err != nil {
		log.Errorw("initial retention sweep failed", "error", err)
	}

	done := make(chan struct{})

	goroutine.SafeGo(log, "retention-sweeper", func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := sweepUC.Execute(context.Background()); err != nil {
					log.Errorw("retention sweep failed", "error", err)
				}
			case <-done:
				return
			}
		}
	})

	log.Infow("retention sweeper started", "interval", interval.String())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	close(done)

	log.Infow("received signal, shutting down", "signal", sig)

	// One last sweep so a restart never loses a full interval.
	sweepCtx, sweepCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := sweepUC.Execute(sweepCtx); err != nil {
		log.Errorw("final retention sweep failed", "error", err)
	}
	sweepCancel()

	log.Infow("retention sweeper stopped")
}
