// Package cache defines the per-instance resolution cache used by mongosettings.
//
// Values are stored and returned as-is: Get must hand back the exact value
// passed to Set for the same key (no copying, no re-encoding), so repeated
// reads within one TTL window observe the identical value.
//
// Entries become invisible once their TTL has elapsed and are evicted when
// the cache is full. There is no explicit invalidation.
package cache

import "context"

// Cache maps field name -> resolved value.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns (value, true) on hit and (nil, false) on miss or expiry.
	Get(key string) (any, bool)

	// Set inserts or replaces key with a fresh TTL. When the cache is full and
	// key is new, an existing entry is evicted first.
	Set(key string, value any)

	// Close releases background resources. Safe to call more than once.
	Close(ctx context.Context) error
}
