// Package cache defines the shared key-value cache boundary used for
// derived data such as the featured-speaker index.
//
// The cache is a convenience layer, not a system of record: values may be
// evicted at any time and there are no transactional guarantees across
// keys. Callers must tolerate a missing value.
package cache

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the cache service cannot be reached.
// A missing key is not an error; Get reports it via the ok result.
var ErrUnavailable = errors.New("cache unavailable")

// Cache is a shared blob cache keyed by string.
type Cache interface {
	// Get returns the blob stored under key. ok is false when the key is
	// absent (or was evicted); that is a normal outcome, not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores the blob under key, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error
}
