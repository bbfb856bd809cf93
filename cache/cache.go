// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache defines the bounded caches used to keep decoded signer keys
// in memory.
package cache

// Cacher acts as a best effort key value store.
type Cacher[K comparable, V any] interface {
	// Put inserts an element into the cache. If space is required, elements will
	// be evicted.
	Put(key K, value V)

	// Get returns the entry in the cache with the key specified, if no value
	// exists, false is returned.
	Get(key K) (V, bool)

	// Len returns the number of elements that are currently in the cache.
	Len() int

	// PortionFilled returns fraction of cache currently filled
	// (0 --> empty, 1 --> full).
	PortionFilled() float64
}
