package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yinterview/forum-agent/internal/setup"
	"github.com/yinterview/forum-agent/internal/stream"
	"github.com/yinterview/forum-agent/internal/stream/redis"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := setup.LoadEnvConfig()
	app, err := setup.Wire(ctx, env, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire application")
	}

	streamCfg := &stream.Config{
		Provider: getEnv("STREAM_PROVIDER", "redis"),
		Redis: &redis.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			Stream:   getEnv("REDIS_STREAM", "forum:discussions"),
			Group:    getEnv("REDIS_GROUP", "forum-agents"),
			Consumer: getEnv("REDIS_CONSUMER_NAME", "forum-consumer-1"),
		},
	}

	consumer, err := stream.NewConsumer(ctx, streamCfg, app.Coordinator, &app.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up consumer group")
	}

	log.Info().Msg("Starting Forum Agent consumer")
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Consumer failed")
	}

	_ = consumer.Stop()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
