package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"task-api/configs"
)

// ConnectRedis returns nil without error when Redis is not configured.
func ConnectRedis(ctx context.Context, cfg configs.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: "",
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return client, nil
}
