package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/config"
	"github.com/uniclubs/universe-backend/internal/infrastructure/database"
	httpServer "github.com/uniclubs/universe-backend/internal/infrastructure/http"
	"github.com/uniclubs/universe-backend/internal/infrastructure/messaging"
	"github.com/uniclubs/universe-backend/internal/infrastructure/provider/stripe"
	"github.com/uniclubs/universe-backend/pkg/logger"
	pkgmessaging "github.com/uniclubs/universe-backend/pkg/messaging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	checkout := stripe.NewProvider(cfg.Service.StripeSecretKey, cfg.Service.StripeWebhookSecret, zapLogger)

	// Membership notifications are best effort; run without them when Redis
	// is not configured.
	var publisher messaging.NotificationPublisher
	if cfg.Redis.Addr != "" {
		redisClient, err := pkgmessaging.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLogger.Warn("Failed to connect to Redis, notifications disabled", zap.Error(err))
		} else {
			publisher = messaging.NewRedisNotificationPublisher(redisClient, cfg.Redis.NotificationChannel)
			defer publisher.Close()
		}
	}

	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, checkout, publisher)

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
