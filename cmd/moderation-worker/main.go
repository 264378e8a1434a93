package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Neiron07/pixel-project/internal/config"
	"github.com/Neiron07/pixel-project/internal/db"
	"github.com/Neiron07/pixel-project/internal/logger"
	"github.com/Neiron07/pixel-project/internal/queue"
	"github.com/Neiron07/pixel-project/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting moderation worker")

	// Initialize database
	database, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize repository
	repo := db.NewRepository(database)

	// Initialize Redis client
	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Create moderation worker
	moderationWorker := worker.NewModerationWorker(cfg, repo, redisClient)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start worker
	errCh := make(chan error, 1)
	go func() {
		errCh <- moderationWorker.Start(ctx)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("Shutting down moderation worker...")
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Moderation worker failed")
	}

	// Stop consuming, wait for the consumer to return, then drain the
	// jobs it already accepted before exiting.
	cancel()
	if err := <-errCh; err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("Consumer exited with error")
	}
	moderationWorker.Stop()

	log.Info().Msg("Moderation worker exited")
}
