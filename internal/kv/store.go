package kv

import (
	"context"
	"time"
)

// Store is the contract for a connected, possibly-unavailable key-value cache
// whose keys may carry an expiry. Implementations report any connectivity
// failure as a *meta.ErrStoreUnavailable so that callers can tell "no such
// key" apart from "could not ask".
type Store interface {
	// Open establishes the connection. A failure is recorded in the liveness
	// state as well as returned.
	Open(context.Context) error
	// IsAlive reports current connection health without blocking.
	IsAlive() bool
	// Get returns the value stored under key. found is false when the key was
	// never set or has expired; the two cases are indistinguishable.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// SetWithExpiry stores value under key. The key becomes unreadable once
	// ttl elapses. Overwriting an existing key resets its ttl.
	SetWithExpiry(
		ctx context.Context,
		key string,
		value string,
		ttl time.Duration,
	) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the connection.
	Close() error
}
