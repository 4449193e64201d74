package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/forum"
	redisconn "github.com/yinterview/forum-agent/internal/redis"
	"github.com/yinterview/forum-agent/internal/stream/redis"
)

type Config struct {
	Provider string // redis today; kafka/sqs later
	Redis    *redis.Config
}

// NewConsumer picks a broker implementation, connects it, and returns a
// consumer bound to the coordinator.
func NewConsumer(
	ctx context.Context,
	cfg *Config,
	coordinator *forum.Coordinator,
	logger *zerolog.Logger,
) (Consumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redisconn.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, 5, logger)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, *cfg.Redis, coordinator, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
