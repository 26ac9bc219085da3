// Package blob defines the durable key-value medium backing the stores.
//
// The auth and transaction stores hold no in-memory state: every operation
// re-reads the blob it owns, so independent processes pointed at the same
// medium observe each other's writes. Mutate is the single read-modify-write
// primitive; an adapter that serializes Mutate calls (or adds a
// compare-and-swap token) is all it takes to make concurrent writers safe.
package blob

import "context"

// Store is the injected persistence dependency.
type Store interface {
	// Get returns the value stored under key, or nil when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Mutate applies fn to the current value (nil when absent) and stores
	// the result. The read and the write happen as one storage operation.
	Mutate(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}
