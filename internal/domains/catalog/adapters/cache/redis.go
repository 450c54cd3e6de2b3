package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
	"github.com/openretail/pos-api-server/internal/domains/catalog/ports"
)

var _ ports.Repository = (*CachedRepository)(nil)

const baseTTL = 15 * time.Minute

// CachedRepository fronts product reads with a Redis read-through cache.
// Writes go straight to the inner repository and invalidate the cached
// entry; listings bypass the cache.
type CachedRepository struct {
	inner  ports.Repository
	client *redis.Client
}

// NewCachedRepository wraps a repository with a Redis cache layer.
func NewCachedRepository(inner ports.Repository, client *redis.Client) *CachedRepository {
	return &CachedRepository{inner: inner, client: client}
}

func (c *CachedRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	created, err := c.inner.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	c.set(ctx, created)
	return created, nil
}

func (c *CachedRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	updated, err := c.inner.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, product.ID)
	return updated, nil
}

func (c *CachedRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if cached := c.get(ctx, id); cached != nil {
		return cached, nil
	}
	product, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, product)
	return product, nil
}

func (c *CachedRepository) List(ctx context.Context, filter ports.Filter) (*ports.ProductPage, error) {
	return c.inner.List(ctx, filter)
}

func (c *CachedRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachedRepository) get(ctx context.Context, id string) *domain.Product {
	if c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) || err != nil {
		return nil
	}
	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil
	}
	return &product
}

func (c *CachedRepository) set(ctx context.Context, product *domain.Product) {
	if c.client == nil || product == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	// Jitter spreads expirations so a burst of cached reads does not
	// expire at once.
	ttl := baseTTL + time.Duration(rand.Intn(5))*time.Minute
	_ = c.client.Set(ctx, cacheKey(product.ID), data, ttl).Err()
}

func (c *CachedRepository) invalidate(ctx context.Context, id string) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, cacheKey(id)).Err()
}

func cacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
