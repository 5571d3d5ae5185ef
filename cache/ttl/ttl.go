package ttl

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/unkn0wn-root/mongosettings/cache"
)

var ErrInvalidTTL = errors.New("ttl cache: TTL must be positive")

// Cache is the default resolution cache: bounded, TTL-expiring, backed by ttlcache.
// Reads do not extend an entry's lifetime; each entry lives exactly TTL from its Set.
// When full, the least recently used entry is evicted.
type Cache struct {
	c         *ttlcache.Cache[string, any]
	started   bool
	closeOnce sync.Once
}

var _ cache.Cache = (*Cache)(nil)

type Config struct {
	MaxEntries uint64        // 0 = unbounded
	TTL        time.Duration // required
	// NoCleanup skips the background sweeper. Expired entries are still never
	// returned; they are dropped when capacity eviction reaches them.
	NoCleanup bool
}

func New(cfg Config) (*Cache, error) {
	if cfg.TTL <= 0 {
		return nil, ErrInvalidTTL
	}
	opts := []ttlcache.Option[string, any]{
		ttlcache.WithTTL[string, any](cfg.TTL),
		ttlcache.WithDisableTouchOnHit[string, any](),
	}
	if cfg.MaxEntries > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, any](cfg.MaxEntries))
	}
	c := &Cache{c: ttlcache.New[string, any](opts...)}
	if !cfg.NoCleanup {
		c.started = true
		go c.c.Start()
	}
	return c, nil
}

func (c *Cache) Get(key string) (any, bool) {
	it := c.c.Get(key)
	if it == nil || it.IsExpired() {
		return nil, false
	}
	return it.Value(), true
}

func (c *Cache) Set(key string, value any) {
	c.c.Set(key, value, ttlcache.DefaultTTL)
}

// Len counts resident entries, including expired ones not yet swept.
func (c *Cache) Len() int { return c.c.Len() }

func (c *Cache) Close(_ context.Context) error {
	c.closeOnce.Do(func() {
		if c.started {
			c.c.Stop()
		}
		c.c.DeleteAll()
	})
	return nil
}
