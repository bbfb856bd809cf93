// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package pebbledb

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/luxfi/aggsig/database"
	"github.com/luxfi/aggsig/utils/set"
)

// Name is the database type selected by this backend.
const Name = "pebbledb"

const (
	// minCacheSize is the minimum size of the block cache in bytes.
	minCacheSize = 8 << 20

	// minHandleCap is the minimum number of open files.
	minHandleCap = 64
)

var _ database.Database = (*Database)(nil)

// Database is a persistent key-value store using Pebble.
type Database struct {
	// lock guards closed and openIterators. Holding it for reading
	// guarantees the underlying store stays open.
	lock          sync.RWMutex
	closed        bool
	openIterators set.Set[*iter]

	// createLock serializes the existence check and the write of Create.
	createLock sync.Mutex

	db *pebble.DB
}

// New returns a pebble backed database rooted at [path].
func New(path string, cacheSize int, handleCap int) (*Database, error) {
	if cacheSize < minCacheSize {
		cacheSize = minCacheSize
	}
	if handleCap < minHandleCap {
		handleCap = minHandleCap
	}

	cache := pebble.NewCache(int64(cacheSize))
	defer cache.Unref()

	opts := &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: handleCap,
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}
	return &Database{
		db:            db,
		openIterators: set.NewSet[*iter](0),
	}, nil
}

func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true

	for it := range db.openIterators {
		it.release()
	}
	db.openIterators.Clear()
	return updateError(db.db.Close())
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	return db.db.Metrics(), nil
}

func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return false, database.ErrClosed
	}
	return db.has(key)
}

func (db *Database) has(key []byte) (bool, error) {
	_, closer, err := db.db.Get(key)
	switch err = updateError(err); err {
	case nil:
		return true, closer.Close()
	case database.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}

	value, closer, err := db.db.Get(key)
	if err != nil {
		return nil, updateError(err)
	}
	defer closer.Close()
	return slices.Clone(value), nil
}

func (db *Database) Create(key []byte, value []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}

	db.createLock.Lock()
	defer db.createLock.Unlock()

	has, err := db.has(key)
	if err != nil {
		return err
	}
	if has {
		return database.ErrAlreadyExists
	}
	return updateError(db.db.Set(key, value, pebble.Sync))
}

func (db *Database) NewIterator() database.Iterator {
	return db.NewIteratorWithPrefix(nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return &database.IteratorError{
			Err: database.ErrClosed,
		}
	}

	it, err := db.db.NewIter(keyRange(prefix))
	if err != nil {
		return &database.IteratorError{
			Err: updateError(err),
		}
	}

	i := &iter{
		db:   db,
		iter: it,
	}
	db.openIterators.Add(i)
	return i
}

// keyRange returns the bounds of the keys that have [prefix] as a prefix.
func keyRange(prefix []byte) *pebble.IterOptions {
	opts := &pebble.IterOptions{}
	if prefix == nil {
		return opts
	}
	opts.LowerBound = slices.Clone(prefix)
	opts.UpperBound = prefixToUpperBound(prefix)
	return opts
}

// prefixToUpperBound returns the smallest key greater than every key with
// [prefix] as a prefix, or nil if no such key exists.
func prefixToUpperBound(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xFF {
			upper := slices.Clone(prefix[:i+1])
			upper[i]++
			return upper
		}
	}
	return nil
}
