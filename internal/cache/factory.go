package cache

import (
	"log/slog"
	"time"
)

// Config selects and tunes the cache backend.
type Config struct {
	// RedisURL enables the Redis backend when non-empty.
	RedisURL string

	// Prefix namespaces keys in Redis.
	Prefix string

	// DefaultTTL applies when a Set passes a zero TTL.
	DefaultTTL time.Duration

	// MaxSize caps the memory backend's entry count (0 = unlimited).
	MaxSize int
}

// New creates a cache from the config: Redis when a URL is configured,
// in-memory otherwise. A Redis connection failure falls back to memory so
// the site stays up, with a logged warning.
func New(cfg Config) Cache {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = time.Hour
	}

	if cfg.RedisURL != "" {
		redisCache, err := NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			slog.Info("cache backend ready", "backend", "redis", "prefix", cfg.Prefix)
			return redisCache
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: time.Minute,
	})
}
