package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/noobmasters/feedcache/internal/cache"
	"github.com/noobmasters/feedcache/internal/consumer"
	"github.com/noobmasters/feedcache/internal/db"
	"github.com/noobmasters/feedcache/internal/feed"
	"github.com/noobmasters/feedcache/pkg/config"
	"github.com/noobmasters/feedcache/pkg/logging"
	"github.com/noobmasters/feedcache/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting feed cache worker")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the content store
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Connect to Redis
	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	store := db.NewStore(db.NewRepository(database.DB))
	pages := cache.NewFeedStore(redisCache, &cfg.Cache)
	router := feed.NewRouter(pages, store, logging.WithComponent("feed"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := consumer.New(redisCache, router, &cfg.Consumer, logging.WithComponent("consumer"))

	done := make(chan error, 1)
	go func() {
		done <- events.Run(ctx)
	}()

	// Wait for interrupt signal or consumer failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down worker...")
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Consumer stopped with error", zap.Error(err))
		}
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("Consumer failed", zap.Error(err))
		}
	}

	logger.Info("Worker exited")
}
