package config

// Redis backs the capacity-result cache and the pending-draft store. If the
// server cannot be reached at startup the constructor returns nil and callers
// degrade gracefully (no caching, in-memory draft slot).

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from Env. The returned client may be
// nil if the initial ping fails.
func NewRedisClient(env Env) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
