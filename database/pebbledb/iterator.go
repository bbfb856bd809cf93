// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package pebbledb

import (
	"slices"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/luxfi/aggsig/database"
)

var _ database.Iterator = (*iter)(nil)

type iter struct {
	// lock guards every field below. The database closes its open iterators
	// from another goroutine.
	lock sync.Mutex

	db   *Database
	iter *pebble.Iterator

	initialized bool
	closed      bool
	err         error

	hasNext bool
	nextKey []byte
	nextVal []byte
}

func (it *iter) Next() bool {
	it.lock.Lock()
	defer it.lock.Unlock()

	switch {
	case it.err != nil:
		it.hasNext = false
		return false
	case it.closed:
		it.hasNext = false
		it.err = database.ErrClosed
		return false
	case !it.initialized:
		it.hasNext = it.iter.First()
		it.initialized = true
	default:
		it.hasNext = it.iter.Next()
	}

	if !it.hasNext {
		it.nextKey, it.nextVal = nil, nil
		it.err = updateError(it.iter.Error())
		return false
	}

	it.nextKey = slices.Clone(it.iter.Key())
	it.nextVal = slices.Clone(it.iter.Value())
	return true
}

func (it *iter) Error() error {
	it.lock.Lock()
	defer it.lock.Unlock()

	return it.err
}

func (it *iter) Key() []byte {
	it.lock.Lock()
	defer it.lock.Unlock()

	if !it.hasNext {
		return nil
	}
	return it.nextKey
}

func (it *iter) Value() []byte {
	it.lock.Lock()
	defer it.lock.Unlock()

	if !it.hasNext {
		return nil
	}
	return it.nextVal
}

func (it *iter) Release() {
	it.db.lock.Lock()
	defer it.db.lock.Unlock()

	it.release()
	it.db.openIterators.Remove(it)
}

// release closes the pebble iterator. The database lock must be held.
func (it *iter) release() {
	it.lock.Lock()
	defer it.lock.Unlock()

	if it.closed {
		return
	}
	it.closed = true
	_ = it.iter.Close()
}
