package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shard-legends/loadout-service/internal/config"
	"github.com/shard-legends/loadout-service/pkg/logger"
	"github.com/shard-legends/loadout-service/pkg/metrics"
	"go.uber.org/zap"
)

// RedisClient хранит соединение с Redis, используемое кешем итогов
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(cfg *config.RedisConfig) (*RedisClient, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	opt.MaxRetries = cfg.MaxRetries
	opt.PoolSize = cfg.MaxConnections
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opt)

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.Int("max_connections", cfg.MaxConnections),
		zap.Duration("read_timeout", cfg.ReadTimeout),
		zap.Duration("write_timeout", cfg.WriteTimeout),
	)

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) Client() *redis.Client {
	return r.client
}

func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}

	logger.Info("Redis connection closed")
	return nil
}

func (r *RedisClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}

// Get returns "" without error for a missing key.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		metrics.RecordRedisOperation("get", "miss", time.Since(start).Seconds())
		return "", nil
	}
	if err != nil {
		metrics.RecordRedisOperation("get", "error", time.Since(start).Seconds())
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	metrics.RecordRedisOperation("get", "ok", time.Since(start).Seconds())
	return val, nil
}

func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	start := time.Now()
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		metrics.RecordRedisOperation("set", "error", time.Since(start).Seconds())
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	metrics.RecordRedisOperation("set", "ok", time.Since(start).Seconds())
	return nil
}

func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}
