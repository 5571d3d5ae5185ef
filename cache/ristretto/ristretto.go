package ristretto

import (
	"context"
	"errors"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/mongosettings/cache"
)

// Cache is a resolution cache on top of Ristretto. Each entry costs 1, so
// MaxCost is the entry bound. Ristretto's TinyLFU admission may refuse a new
// entry when the cache is full; a refused entry is simply fetched again on the
// next read. Eviction order is sampled LFU, not insertion or recency order.
type Cache struct {
	c         *rc.Cache
	ttl       time.Duration
	closeOnce sync.Once
}

var _ cache.Cache = (*Cache)(nil)

type Config struct {
	MaxEntries  int64
	TTL         time.Duration
	NumCounters int64 // 0 => 10 * MaxEntries
	BufferItems int64 // 0 => 64
	Metrics     bool
}

func New(cfg Config) (*Cache, error) {
	if cfg.MaxEntries <= 0 || cfg.TTL <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	counters := cfg.NumCounters
	if counters <= 0 {
		counters = 10 * cfg.MaxEntries
	}
	buffer := cfg.BufferItems
	if buffer <= 0 {
		buffer = 64
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters:        counters,
		MaxCost:            cfg.MaxEntries,
		BufferItems:        buffer,
		Metrics:            cfg.Metrics,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c, ttl: cfg.TTL}, nil
}

func (p *Cache) Get(key string) (any, bool) {
	return p.c.Get(key)
}

// Set waits for the write buffer so that the entry is visible to the next Get.
func (p *Cache) Set(key string, value any) {
	if p.c.SetWithTTL(key, value, 1, p.ttl) {
		p.c.Wait()
	}
}

func (p *Cache) Close(_ context.Context) error {
	p.closeOnce.Do(p.c.Close)
	return nil
}

// Metrics exposes Ristretto counters when Config.Metrics is set (nil otherwise).
func (p *Cache) Metrics() *rc.Metrics { return p.c.Metrics }
