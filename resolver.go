package mongosettings

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/unkn0wn-root/mongosettings/cache"
	"github.com/unkn0wn-root/mongosettings/store"
)

// resolver turns a field read into a cache lookup or, on a miss, one store
// fetch followed by coercion. Concurrent misses on the same name share a
// single fetch.
type resolver struct {
	store store.Store
	cache cache.Cache
	log   Logger
	hooks Hooks
	group singleflight.Group

	fetchTimeout time.Duration // <= 0 => no bound
}

type outcome struct {
	v     any
	found bool
}

// resolve returns (value, true, nil) for a stored or defaulted value and
// (nil, false, nil) when there is no record and no default.
func (r *resolver) resolve(ctx context.Context, name string, f Field) (any, bool, error) {
	if v, ok := r.cache.Get(name); ok {
		r.hooks.CacheHit(name)
		return v, true, nil
	}
	r.hooks.CacheMiss(name)

	// The shared fetch outlives any single caller's cancellation; each caller
	// stops waiting when its own ctx is done.
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(name, func() (any, error) {
		// filled by a fetch that finished while this caller was on its way in
		if v, ok := r.cache.Get(name); ok {
			return outcome{v: v, found: true}, nil
		}
		fctx := fetchCtx
		if r.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, r.fetchTimeout)
			defer cancel()
		}
		return r.fetch(fctx, name, f)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
	if res.Shared {
		r.hooks.FetchShared(name)
	}
	if res.Err != nil {
		return nil, false, res.Err
	}
	if out := res.Val.(outcome); out.found {
		return out.v, true, nil
	}
	return f.def, f.hasDef, nil
}

// fetch performs exactly one store call. Only successfully coerced values are
// cached; absence and rejected values are re-queried on the next read.
func (r *resolver) fetch(ctx context.Context, name string, f Field) (outcome, error) {
	rec, ok, err := r.store.FetchByKey(ctx, name)
	if err != nil {
		r.log.Error("remote store fetch failed", Fields{"field": name, "err": err})
		r.hooks.StoreUnavailable(name, err)
		return outcome{}, &UnavailableError{Field: name, Err: err}
	}
	if !ok {
		r.log.Debug("no remote record, using default", Fields{"field": name, "hasDefault": f.hasDef})
		r.hooks.RecordNotFound(name)
		return outcome{}, nil
	}

	v, err := Coerce(f.kind, rec.Value)
	if err != nil {
		var me *MismatchError
		if errors.As(err, &me) {
			me.Field = name
		}
		r.log.Warn("remote value rejected", Fields{"field": name, "kind": f.kind.String()})
		r.hooks.CoercionFailed(name, f.kind, rec.Value)
		return outcome{}, err
	}

	r.cache.Set(name, v)
	r.log.Debug("remote value cached", Fields{"field": name, "kind": f.kind.String()})
	return outcome{v: v, found: true}, nil
}
