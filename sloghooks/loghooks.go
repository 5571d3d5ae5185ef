package sloghooks

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/mongosettings"
)

type Options struct {
	// Sampling to avoid floods on hot fields; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional raw value formatter for rejected values. Defaults to
	// "<type> (redacted)" so stored secrets never reach logs.
	Redact func(any) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ mongosettings.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(v any) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(v)
	}
	return fmt.Sprintf("%T (redacted)", v)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) CacheHit(field string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("mongosettings.cache_hit", "field", field)
}

func (h *Hooks) CacheMiss(field string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("mongosettings.cache_miss", "field", field)
}

func (h *Hooks) FetchShared(field string) {
	if h.l == nil {
		return
	}
	h.l.Debug("mongosettings.fetch_shared", "field", field)
}

func (h *Hooks) RecordNotFound(field string) {
	if h.l == nil {
		return
	}
	h.l.Info("mongosettings.record_not_found", "field", field)
}

func (h *Hooks) CoercionFailed(field string, kind mongosettings.Kind, raw any) {
	if h.l == nil {
		return
	}
	h.l.Warn("mongosettings.coercion_failed",
		"field", field,
		"kind", kind.String(),
		"value", h.redact(raw))
}

func (h *Hooks) StoreUnavailable(field string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("mongosettings.store_unavailable",
		"field", field,
		"err", err)
}
