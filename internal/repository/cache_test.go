package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// setupTestCache creates a miniredis server and a cache pointed at it.
func setupTestCache(t *testing.T) (*RedisCartCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	cache := NewRedisCartCache(client, time.Minute, zap.NewNop())
	return cache, mr
}

func TestCacheGet_Hit(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	cart := &models.Cart{
		ID: "1d40e473-e034-49f5-ac5d-980c7b7e7942",
		Lines: []models.CartLine{
			{ProductID: "a35d7362-9466-4118-994d-1e1d846442fd", Quantity: 2},
		},
	}
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:"+cart.ID, string(data)))

	got, err := cache.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
	assert.Equal(t, cart.Lines, got.Lines)
}

func TestCacheGet_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)

	got, err := cache.Get(context.Background(), "missing-cart")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestCacheSet_StoresWithTTL(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	cart := &models.Cart{
		ID:    "1d40e473-e034-49f5-ac5d-980c7b7e7942",
		Lines: []models.CartLine{},
	}

	require.NoError(t, cache.Set(ctx, cart))

	assert.True(t, mr.Exists("cart:"+cart.ID))
	assert.Equal(t, time.Minute, mr.TTL("cart:"+cart.ID))

	got, err := cache.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
}

func TestCacheSet_ExpiresAfterTTL(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	cart := &models.Cart{ID: "1d40e473-e034-49f5-ac5d-980c7b7e7942"}
	require.NoError(t, cache.Set(ctx, cart))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, cart.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheDelete(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	cart := &models.Cart{ID: "1d40e473-e034-49f5-ac5d-980c7b7e7942"}
	require.NoError(t, cache.Set(ctx, cart))

	require.NoError(t, cache.Delete(ctx, cart.ID))
	assert.False(t, mr.Exists("cart:"+cart.ID))

	// Deleting again is a no-op.
	assert.NoError(t, cache.Delete(ctx, cart.ID))
}
