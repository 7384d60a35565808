// Package cache provides an optional redis read-through cache for the
// product catalog. All methods are safe on a nil *Cache, so the rest of
// the application does not care whether REDIS_ADDR is configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Sididaher/achat-app/models"
	"github.com/redis/go-redis/v9"
)

const (
	productsKey = "products:all"
	productsTTL = 5 * time.Minute
)

type Cache struct {
	client *redis.Client
}

// New connects to redis and verifies the connection with a ping.
func New(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

// GetProducts returns the cached catalog and whether it was present.
func (c *Cache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, productsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts stores the catalog with a TTL. Failures are ignored: the
// cache is an optimization, never a source of truth.
func (c *Cache) SetProducts(ctx context.Context, products []models.Product) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, productsKey, payload, productsTTL).Err()
}

// InvalidateProducts drops the cached catalog. Called on any product
// mutation, including the stock increments of the purchase workflow.
func (c *Cache) InvalidateProducts(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, productsKey).Err()
}
