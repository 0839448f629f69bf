// Package refdata caches slow-changing reference data (event categories, badge
// catalog) with a configurable TTL. The cache is read-through at call sites:
// callers try Get, fall back to the source of truth, then Set.
package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Category namespaces cached entries so one kind of reference data can be
// invalidated without touching the rest.
type Category string

const (
	CategoryEventCategories Category = "event_categories"
	CategoryBadgeCatalog    Category = "badge_catalog"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("refdata: cache miss")

// Store is the backend contract. Implementations: Redis and memory.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Cache is a typed facade over a Store with a fixed TTL.
type Cache struct {
	store Store
	ttl   time.Duration
}

// NewCache wraps store. A non-positive ttl disables expiry.
func NewCache(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

func key(category Category, id string) string {
	return "refdata:" + string(category) + ":" + id
}

// GetJSON loads and unmarshals a cached entry into out. Returns ErrMiss when
// absent.
func (c *Cache) GetJSON(ctx context.Context, category Category, id string, out any) error {
	raw, err := c.store.Get(ctx, key(category, id))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("refdata: decode %s/%s: %w", category, id, err)
	}
	return nil
}

// SetJSON marshals value and stores it under the category namespace.
func (c *Cache) SetJSON(ctx context.Context, category Category, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("refdata: encode %s/%s: %w", category, id, err)
	}
	return c.store.Set(ctx, key(category, id), raw, c.ttl)
}

// Invalidate drops every entry in the category.
func (c *Cache) Invalidate(ctx context.Context, category Category) error {
	return c.store.DeletePrefix(ctx, "refdata:"+string(category)+":")
}
