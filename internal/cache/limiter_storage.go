package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

// LimiterStorage keeps fiber limiter counters in Redis so every instance
// shares the same per-IP budget.
type LimiterStorage struct {
	rdb    *redis.Client
	prefix string
}

var _ fiber.Storage = (*LimiterStorage)(nil)

func NewLimiterStorage(rdb *redis.Client, prefix string) *LimiterStorage {
	return &LimiterStorage{rdb: rdb, prefix: prefix}
}

func (s *LimiterStorage) Get(key string) ([]byte, error) {
	val, err := s.rdb.Get(context.Background(), s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.rdb.Set(context.Background(), s.prefix+key, val, exp).Err()
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.rdb.Del(context.Background(), s.prefix+key).Err()
}

// Reset removes only the keys under this storage's prefix.
func (s *LimiterStorage) Reset() error {
	ctx := context.Background()
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op, the Redis client belongs to the caller.
func (s *LimiterStorage) Close() error {
	return nil
}
