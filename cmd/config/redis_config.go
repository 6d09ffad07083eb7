package config

import (
	"context"
	"fmt"
	"time"

	"freshtrack-backend/internal/utils"
	"freshtrack-backend/pkg/cache"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

// ConnectCache returns a Redis backed store, or an in-process store when
// REDIS_URL is empty or Redis cannot be reached at startup. The closer
// releases the Redis client.
func ConnectCache(ctx context.Context) (cache.Store, func() error) {
	rawURL := utils.GetConfig("REDIS_URL")
	if rawURL == "" {
		log.Warn("REDIS_URL not set, using in-memory cache")
		return cache.NewMemoryStore(), func() error { return nil }
	}

	client, err := newRedisClient(rawURL)
	if err != nil {
		log.Warnw("invalid REDIS_URL, using in-memory cache", "error", err)
		return cache.NewMemoryStore(), func() error { return nil }
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("redis unreachable, using in-memory cache", "error", err)
		_ = client.Close()
		return cache.NewMemoryStore(), func() error { return nil }
	}

	log.Info("connected to redis")
	return cache.NewRedisStore(client), client.Close
}

func newRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	return redis.NewClient(opts), nil
}
