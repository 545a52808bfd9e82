// Where: internal/infra/secrets/cache.go
// What: TTL cache with single-flight loading in front of a Store.
// Why: Avoid one secret-store round trip per page view when operators opt in.
package secrets

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// CachedStore memoizes successful lookups for a fixed TTL. Errors are not cached.
type CachedStore struct {
	inner Store
	ttl   time.Duration
	cache *gocache.Cache
	group singleflight.Group
}

// WithCache wraps store in a CachedStore. A non-positive ttl returns store
// unchanged, which keeps the fetch-per-request behaviour.
func WithCache(store Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return store
	}
	return &CachedStore{
		inner: store,
		ttl:   ttl,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// GetSecret serves from the cache or loads once for all concurrent callers.
// The shared load is detached from any single caller's cancellation; each
// caller still stops waiting when its own ctx is done.
func (c *CachedStore) GetSecret(ctx context.Context, vault, name string) (string, error) {
	key := vault + "\x00" + name
	if value, ok := c.cache.Get(key); ok {
		return value.(string), nil
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
		loaded, err := c.inner.GetSecret(loadCtx, vault, name)
		if err != nil {
			return "", err
		}
		c.cache.Set(key, loaded, c.ttl)
		return loaded, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Flush drops every cached entry.
func (c *CachedStore) Flush() {
	c.cache.Flush()
}
