package cache

import (
	"context"
	"errors"
	"log/slog"
)

// PageCache adapts a Cache to the boolean-result shape the content
// resolver consumes. Backend errors are logged and treated as misses so
// cache trouble never takes down page rendering.
type PageCache struct {
	backend Cache
}

// NewPageCache wraps a backend cache for resolved page storage.
func NewPageCache(backend Cache) *PageCache {
	return &PageCache{backend: backend}
}

// Get returns the cached value and whether it was found.
func (p *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := p.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("page cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Set stores a value with the backend's default TTL.
func (p *PageCache) Set(ctx context.Context, key string, value []byte) {
	if err := p.backend.Set(ctx, key, value, 0); err != nil {
		slog.Warn("page cache set failed", "key", key, "error", err)
	}
}

// Delete removes a cached value.
func (p *PageCache) Delete(ctx context.Context, key string) {
	if err := p.backend.Delete(ctx, key); err != nil {
		slog.Warn("page cache delete failed", "key", key, "error", err)
	}
}
