// Package kvstore defines the key-value store contract and its backends.
package kvstore

import "context"

// Store provides namespaced string-to-string storage. Implementations make
// no transactional guarantees; callers must not rely on isolation between a
// Set and a concurrent Keys scan.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key is unknown.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Keys returns every key beginning with prefix, in lexicographic order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
