package utils

import (
	"context"
	"fmt"
	"time"

	"auction-core/internal/config"
	"auction-core/internal/domain"
	"auction-core/internal/infrastructure/memory"
	"auction-core/internal/infrastructure/redis"
	"auction-core/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
)

// EventBus is both ends of the auction event channel.
type EventBus interface {
	domain.EventPublisher
	domain.EventSubscriber
}

type redisBus struct {
	*redis.EventPublisherImpl
	*redis.RedisEventSubscriber
}

func InitializeRedis(ctx context.Context, cfg config.RedisConfig) (*redisClient.Client, error) {
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// InitializeEvents connects to Redis pub/sub. The memory driver gets an
// in-process bus instead, since nothing outside the process could see its
// state anyway.
func InitializeEvents(ctx context.Context, cfg *config.Config, log logger.Logger) (EventBus, Closer, error) {
	if cfg.Store.Driver == config.DriverMemory {
		return memory.NewEventBus(0, log), noopCloser, nil
	}

	rdb, err := InitializeRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Connected to Redis", "address", cfg.Redis.Address, "channel", cfg.Redis.Channel)

	return redisBus{
		EventPublisherImpl:   redis.NewEventPublisher(rdb, cfg.Redis.Channel),
		RedisEventSubscriber: redis.NewRedisEventSubscriber(rdb, cfg.Redis.Channel, log),
	}, rdb.Close, nil
}
