// Package cache keeps a read-through copy of catalog products in Redis.
// Redis failures are logged and treated as misses; the database stays
// the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shaivyah/storefront-backend/internal/models"
)

const missingMarker = "notfound"

type Result int

const (
	Miss Result = iota
	Hit
	// Missing means the product was recently looked up and did not exist.
	Missing
)

type ProductCache struct {
	redis      *redis.Client
	ttl        time.Duration
	missingTTL time.Duration
}

// NewProductCache returns a cache that does nothing when client is nil.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{
		redis:      client,
		ttl:        ttl,
		missingTTL: time.Minute,
	}
}

func (c *ProductCache) Enabled() bool {
	return c != nil && c.redis != nil
}

func productKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *ProductCache) Get(ctx context.Context, id uuid.UUID) (*models.Product, Result) {
	if !c.Enabled() {
		return nil, Miss
	}

	key := productKey(id)
	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == missingMarker {
			return nil, Missing
		}

		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to unmarshal cached product, continuing with DB")
			return nil, Miss
		}
		return &product, Hit

	case errors.Is(err, redis.Nil):
		return nil, Miss

	default:
		logrus.WithError(err).WithField("key", key).Warn("Redis error, continuing with DB")
		return nil, Miss
	}
}

func (c *ProductCache) Set(ctx context.Context, product *models.Product) {
	if !c.Enabled() || product == nil {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		logrus.WithError(err).Warn("Failed to marshal product for cache")
		return
	}

	if err := c.redis.Set(ctx, productKey(product.ID), data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("product_id", product.ID).Warn("Failed to cache product")
	}
}

// SetMissing remembers a failed lookup for a short while.
func (c *ProductCache) SetMissing(ctx context.Context, id uuid.UUID) {
	if !c.Enabled() {
		return
	}
	if err := c.redis.Set(ctx, productKey(id), missingMarker, c.missingTTL).Err(); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Failed to cache missing product")
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if !c.Enabled() {
		return
	}
	if err := c.redis.Del(ctx, productKey(id)).Err(); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Failed to delete product cache")
	}
}
