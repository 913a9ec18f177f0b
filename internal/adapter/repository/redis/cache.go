package redis

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/iho/finledger/internal/usecase"
)

// Cache implements usecase.Cache using Redis.
type Cache struct {
	client  *redis.Client
	prefix  string
	lookups *prometheus.CounterVec
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "finledger:cache:",
	}
}

// WithLookups counts Get results (hit, miss, error) on lookups.
func (c *Cache) WithLookups(lookups *prometheus.CounterVec) *Cache {
	c.lookups = lookups
	return c
}

// Get retrieves a value by key. Missing keys return usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.observe("miss")
		return nil, usecase.ErrCacheMiss
	case err != nil:
		c.observe("error")
		return nil, err
	}
	c.observe("hit")
	return val, nil
}

func (c *Cache) observe(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
