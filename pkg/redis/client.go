package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saaga0h/jeeves-rgb/pkg/config"
)

// redisClient implements the Client interface using go-redis
type redisClient struct {
	client *redis.Client
	cfg    *config.Config
	logger *slog.Logger
}

// NewClient creates a new Redis client with the given configuration
func NewClient(cfg *config.Config, logger *slog.Logger) Client {
	opts := &redis.Options{
		Addr:     cfg.RedisAddress(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	return &redisClient{
		client: redis.NewClient(opts),
		cfg:    cfg,
		logger: logger,
	}
}

// HSet sets one or more fields in a hash within a single round trip
func (r *redisClient) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	err := r.client.HSet(ctx, key, values).Err()
	if err != nil {
		return fmt.Errorf("failed to set hash %s: %w", key, err)
	}
	return nil
}

// HGetAll gets all fields from a hash. A missing key yields an empty map.
func (r *redisClient) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	val, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get hash %s: %w", key, err)
	}
	return val, nil
}

// Expire sets a TTL on a key
func (r *redisClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	err := r.client.Expire(ctx, key, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set expiration on key %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection to Redis
func (r *redisClient) Ping(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	r.logger.Info("Connected to Redis", "address", r.cfg.RedisAddress())
	return nil
}

// Close closes the Redis connection
func (r *redisClient) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}
