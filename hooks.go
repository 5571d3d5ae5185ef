package mongosettings

// Hooks lightweight callbacks for high-signal resolution events.
// Implementations MUST be cheap and non-blocking; they run on every field read.
type Hooks interface {
	// Cached value returned without a store call.
	CacheHit(field string)

	// No live cache entry; a fetch follows (or is joined).
	CacheMiss(field string)

	// One fetch result was shared by concurrent readers; reported to each of them.
	FetchShared(field string)

	// The store had no record; the declared default was returned.
	RecordNotFound(field string)

	// The stored value could not be coerced to the declared kind.
	CoercionFailed(field string, kind Kind, raw any)

	// The store failed for infrastructural reasons.
	StoreUnavailable(field string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CacheHit(string)                  {}
func (NopHooks) CacheMiss(string)                 {}
func (NopHooks) FetchShared(string)               {}
func (NopHooks) RecordNotFound(string)            {}
func (NopHooks) CoercionFailed(string, Kind, any) {}
func (NopHooks) StoreUnavailable(string, error)   {}
