package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dkim/authapi-backend/config"
	"github.com/dkim/authapi-backend/internal/app/controller"
	"github.com/dkim/authapi-backend/internal/app/repository"
	"github.com/dkim/authapi-backend/internal/app/service"
	"github.com/dkim/authapi-backend/internal/cache"
	"github.com/dkim/authapi-backend/internal/db"
	"github.com/dkim/authapi-backend/internal/middleware"
	"github.com/dkim/authapi-backend/internal/router"
	"github.com/dkim/authapi-backend/internal/scheduler"
	"github.com/dkim/authapi-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Auth Service API", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize the token cache, closed on shutdown
	tokenCache, err := cache.NewRedisCache(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize token cache", err)
	}
	defer func() {
		if err := tokenCache.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	resetRequestRepo := repository.NewResetRequestRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	passwordResetService := service.NewPasswordResetService(
		tokenCache,
		userRepo,
		resetRequestRepo,
		cfg.Reset.TokenExpiry,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	loginLimiter := middleware.NewRateLimiter("login", cfg.RateLimit.LoginPerMinute)
	resetLimiter := middleware.NewRateLimiter("password_reset", cfg.RateLimit.ResetPerMinute)
	defer loginLimiter.Stop()
	defer resetLimiter.Stop()

	// Start the audit purge scheduler
	auditScheduler := scheduler.NewResetAuditScheduler(resetRequestRepo, cfg.Reset.AuditRetention)
	if err := auditScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reset audit scheduler", err)
	}
	defer auditScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		authMiddleware,
		loginLimiter,
		resetLimiter,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
