// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HitEvery:  100, // ~every 100th cache hit
//	    MissEvery: 1,   // every miss
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	err := mongosettings.Init(ctx, s, mongosettings.Options{
//	    Hooks: hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/mongosettings"
)

// Hooks forwards events to inner on a bounded queue served by a fixed set of
// workers. When the queue is full, events are dropped and counted.
type Hooks struct {
	inner   mongosettings.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ mongosettings.Hooks = (*Hooks)(nil)

func New(inner mongosettings.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close stops accepting events, drains the queue and waits for the workers.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded because the queue was full or closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
		h.mu.RUnlock()
	default:
		h.mu.RUnlock()
		h.dropped.Add(1)
	}
}

func (h *Hooks) CacheHit(f string)       { h.try(func() { h.inner.CacheHit(f) }) }
func (h *Hooks) CacheMiss(f string)      { h.try(func() { h.inner.CacheMiss(f) }) }
func (h *Hooks) FetchShared(f string)    { h.try(func() { h.inner.FetchShared(f) }) }
func (h *Hooks) RecordNotFound(f string) { h.try(func() { h.inner.RecordNotFound(f) }) }
func (h *Hooks) CoercionFailed(f string, k mongosettings.Kind, raw any) {
	h.try(func() { h.inner.CoercionFailed(f, k, raw) })
}
func (h *Hooks) StoreUnavailable(f string, err error) {
	h.try(func() { h.inner.StoreUnavailable(f, err) })
}
