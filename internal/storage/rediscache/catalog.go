// Package rediscache decorates the catalog with a short-TTL Redis cache.
// Only configuration lookups go through here; holds and bookings always hit
// Postgres, so staleness can never break the exclusivity invariant.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peterbarone/partyroombooker-sub001/internal/app"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

const defaultTTL = 30 * time.Second

type Catalog struct {
	inner app.Catalog
	cli   redis.UniversalClient
	ttl   time.Duration
}

type Option func(*Catalog)

// WithTTL overrides the default cache entry lifetime.
func WithTTL(d time.Duration) Option {
	return func(c *Catalog) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// NewCatalog wraps inner with a Redis-backed read-through cache. Redis
// failures fall through to the inner catalog.
func NewCatalog(inner app.Catalog, cli redis.UniversalClient, opts ...Option) *Catalog {
	c := &Catalog{
		inner: inner,
		cli:   cli,
		ttl:   defaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) TenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	return cached(ctx, c, "tenant:slug:"+slug, func() (domain.Tenant, error) {
		return c.inner.TenantBySlug(ctx, slug)
	})
}

func (c *Catalog) PolicyFor(ctx context.Context, tenantID string) (domain.Policy, error) {
	return cached(ctx, c, "policy:"+tenantID, func() (domain.Policy, error) {
		return c.inner.PolicyFor(ctx, tenantID)
	})
}

func (c *Catalog) RoomsForTenant(ctx context.Context, tenantID string) ([]domain.Room, error) {
	return cached(ctx, c, "rooms:"+tenantID, func() ([]domain.Room, error) {
		return c.inner.RoomsForTenant(ctx, tenantID)
	})
}

func (c *Catalog) PackageByID(ctx context.Context, tenantID, packageID string) (domain.Package, error) {
	return cached(ctx, c, "package:"+tenantID+":"+packageID, func() (domain.Package, error) {
		return c.inner.PackageByID(ctx, tenantID, packageID)
	})
}

func (c *Catalog) SlotTemplates(ctx context.Context, tenantID string, weekday time.Weekday) ([]domain.SlotTemplate, error) {
	key := fmt.Sprintf("slots:%s:%d", tenantID, weekday)
	return cached(ctx, c, key, func() ([]domain.SlotTemplate, error) {
		return c.inner.SlotTemplates(ctx, tenantID, weekday)
	})
}

// cached reads a JSON entry from Redis, falling back to load on miss or on
// any Redis error. Errors from load are never cached.
func cached[T any](ctx context.Context, c *Catalog, key string, load func() (T, error)) (T, error) {
	const prefix = "catalog:"
	key = prefix + key

	if payload, err := c.cli.Get(ctx, key).Bytes(); err == nil {
		var value T
		if err := json.Unmarshal(payload, &value); err == nil {
			return value, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if payload, err := json.Marshal(value); err == nil {
		_ = c.cli.Set(ctx, key, payload, c.ttl).Err()
	}
	return value, nil
}
