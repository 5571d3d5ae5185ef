// Package mongosettings resolves settings fields lazily from a remote key/value
// document store. A field declared as Remote is fetched on first read, coerced to
// its declared kind, and cached per settings instance for a bounded time. Plain
// struct fields are left untouched.
//
// Components:
//   - Field / Remote[T]: immutable descriptor (Kind + optional default) and the
//     typed field variant that carries it.
//   - Coerce: converts a raw stored value into the declared kind or returns a
//     *MismatchError.
//   - cache.Cache: per-instance resolution cache with capacity and TTL
//     (ttlcache by default, ristretto optional).
//   - store.Store: fetch-by-key contract over the document store (MongoDB by
//     default, Redis optional).
//
// Resolution of a Remote field:
//
//	cache hit        -> cached value, no store call
//	record found     -> Coerce -> cache -> value
//	record missing   -> declared default, nothing cached
//	coercion failure -> *MismatchError, nothing cached
//
// Usage:
//
//	type AppSettings struct {
//	    mongosettings.Base
//
//	    Service   string
//	    RateLimit mongosettings.Remote[float64] `mongo:"rate_limit"`
//	}
//
//	func (AppSettings) MongoConnector() *mongosettings.Connector { return conn }
//
//	s := &AppSettings{Service: "api", RateLimit: mongosettings.Number().WithDefault(10)}
//	if err := mongosettings.Init(ctx, s, mongosettings.Options{}); err != nil { ... }
//	defer s.Close(ctx)
//	limit, err := s.RateLimit.Get(ctx)
package mongosettings
