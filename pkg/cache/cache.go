// Package cache defines the TTL key/value store shared by all rate providers.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with per-key TTL.
//
// Get returns the stored value only while its TTL has not elapsed; once the
// TTL elapses the key behaves as not-found (backends may or may not evict).
// Set overwrites any prior entry unconditionally; concurrent writers for the
// same key are last-write-wins, which is acceptable because all values for a
// key derive from the same idempotent upstream fetch.
//
// Implementations own their stored bytes: slices passed to Set or returned
// from Get may be mutated by the caller without affecting the entry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// GetJSON reads key and unmarshals it into T. The second return value is
// false on a miss or an expired entry.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool, error) {
	var value T
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return value, false, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

// SetJSON marshals value and stores it under key with the given TTL.
func SetJSON[T any](ctx context.Context, c Cache, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, ttl)
}
