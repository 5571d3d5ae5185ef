// Package store defines the read-only remote store consumed by mongosettings.
//
// A store answers exact-match lookups: the record whose key field equals the
// requested field name, and whose value field holds the raw payload. Stores
// never retry; any retry or backoff belongs to the underlying client.
package store

import "context"

// Record is a stored key/value pair. Value is the raw payload as decoded by
// the store (numbers, strings, []any, map[string]any, ...).
type Record struct {
	Key   string
	Value any
}

// Store fetches records by key. Must be safe for concurrent use.
type Store interface {
	// FetchByKey returns (record, true, nil) when found and (Record{}, false, nil)
	// when no record exists. Connection or query failures return a non-nil error.
	FetchByKey(ctx context.Context, key string) (Record, bool, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}
