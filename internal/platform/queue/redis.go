package queue

import (
	"context"
	"fmt"

	"mockmatch/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// Connect builds the Redis client backing the notification event queue.
func Connect(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return rdb, nil
}
