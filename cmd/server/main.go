package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/daily-diet-api/internal/api"
	"github.com/dom/daily-diet-api/internal/config"
	"github.com/dom/daily-diet-api/internal/logger"
	"github.com/dom/daily-diet-api/internal/repository/postgres"
	"github.com/dom/daily-diet-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := postgres.NewConnection(postgres.Options{
		DatabaseURL:  cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		LogLevel:     postgres.LogLevelFor(cfg.Environment),
	})
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			zl.Fatal("failed to run migrations", zap.Error(err))
		}
		zl.Info("migrations applied")
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize services
	services := service.NewServices(repos)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zl.Info("HTTP server running",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Bool("enforce_meal_ownership", cfg.EnforceMealOwnership),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	zl.Info("server stopped")
}
