package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

const (
	cartKeyPrefix   = "cart:"
	defaultCacheTTL = 5 * time.Minute
)

// Ensure RedisCartCache implements CartCache.
var _ CartCache = (*RedisCartCache)(nil)

// RedisCartCache implements CartCache using Redis.
type RedisCartCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient creates a Redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisCartCache creates a Redis-backed cart cache. The client is injected
// so tests can point it at an in-memory server.
func NewRedisCartCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCartCache {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisCartCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves a cart from cache. Returns ErrCacheMiss when absent.
func (c *RedisCartCache) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	data, err := c.client.Get(ctx, cartKeyPrefix+cartID).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.logger.Error("cache get error", zap.String("cart_id", cartID), zap.Error(err))
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}

	c.logger.Debug("cache hit", zap.String("cart_id", cartID))
	return &cart, nil
}

// Set stores a cart in cache with the configured TTL.
func (c *RedisCartCache) Set(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, cartKeyPrefix+cart.ID, data, c.ttl).Err(); err != nil {
		c.logger.Error("cache set error", zap.String("cart_id", cart.ID), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a cart from cache.
func (c *RedisCartCache) Delete(ctx context.Context, cartID string) error {
	if err := c.client.Del(ctx, cartKeyPrefix+cartID).Err(); err != nil {
		c.logger.Error("cache delete error", zap.String("cart_id", cartID), zap.Error(err))
		return err
	}
	return nil
}
