// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shaivyah/storefront-backend/internal/cache"
	"github.com/shaivyah/storefront-backend/internal/config"
	"github.com/shaivyah/storefront-backend/internal/database"
	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/router"
	"github.com/shaivyah/storefront-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	setupLogging(cfg)

	if err := i18n.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		logrus.WithError(err).Fatal("Failed to seed admin user")
	}

	deps := router.Dependencies{
		ProductCache: connectCache(cfg),
		Notifier:     services.NewNotificationService(cfg),
	}

	// Leave the interface nil when Stripe is not configured.
	if cfg.Payment.StripeSecretKey != "" {
		deps.Gateway = services.NewStripeGateway(cfg.Payment.StripeSecretKey)
	} else {
		logrus.Warn("STRIPE_SECRET_KEY not set, online payment disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := router.Initialize(db, cfg, deps)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() || cfg.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logrus.WithField("level", cfg.Log.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// connectCache returns a disabled cache when Redis is off or unreachable.
func connectCache(cfg *config.Config) *cache.ProductCache {
	if !cfg.Redis.Enabled {
		return cache.NewProductCache(nil, 0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.Connect(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, product cache disabled")
		return cache.NewProductCache(nil, 0)
	}

	return cache.NewProductCache(client, time.Duration(cfg.Redis.ProductTTL)*time.Second)
}
