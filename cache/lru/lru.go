// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/luxfi/aggsig/cache"
)

var _ cache.Cacher[int, int] = (*Cache[int, int])(nil)

// Cache is a key value store with bounded size. If the size limit is
// exceeded, the least recently used element is evicted. It is safe for
// concurrent use.
type Cache[K comparable, V any] struct {
	cache *lru.Cache[K, V]
	size  int
}

// New returns a cache holding at most [size] elements. [size] must be
// positive.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	c, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		cache: c,
		size:  size,
	}, nil
}

func (c *Cache[K, V]) Put(key K, value V) {
	c.cache.Add(key, value)
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

func (c *Cache[K, V]) Len() int {
	return c.cache.Len()
}

func (c *Cache[K, V]) PortionFilled() float64 {
	return float64(c.cache.Len()) / float64(c.size)
}
