package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ringforge/ringforge/pkg/errors"
)

// RedisCache implements a Redis-backed cache for multi-instance server
// deployments, where every instance should see the same rendered
// artifacts.
type RedisCache struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string // host:port, default "localhost:6379"
	Password string
	DB       int
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", cfg.Addr)
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeNetwork, err, "redis get %s", key)
	}
	return data, true, nil
}

// Set stores a value in Redis. Redis handles expiration natively; a zero
// TTL stores the key without one.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis set %s", key)
	}
	return nil
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis del %s", key)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
