package db

import (
	"context"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when Redis is not configured or does not answer
// a ping; callers treat a nil client as "feature disabled".
func ConnectRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, continuing without it", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	logger.Info("redis connected", "addr", cfg.Addr)
	return client
}
