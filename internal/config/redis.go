package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects the shared Redis instance used by the rate
// limiter. Returns nil when no address is configured; callers treat a
// nil client as "limiting disabled".
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Println("Redis not configured, rate limiting disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Warning: Redis unreachable at %s: %v", cfg.Redis.Addr, err)
	} else {
		log.Printf("✅ Redis connected successfully [%s]", cfg.Redis.Addr)
	}

	return rdb
}
