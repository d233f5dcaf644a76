// Package cache persists the last known good server response per read
// feature, so the app can show something when the network is down. Each
// feature owns exactly one key; writes replace the whole entry, never merge.
package cache

import (
	"context"
	"time"
)

// Store is the offline response cache.
//
// Get reports when the value was written so callers can decide how stale it
// is. There is no expiry here: freshness policy belongs to the read layer.
type Store interface {
	// Set replaces the entry under key with value, stamped with the current time.
	Set(ctx context.Context, key string, value []byte) error

	// Get returns the entry under key, or ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, cachedAt time.Time, ok bool, err error)
}
