// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package memdb

import (
	"context"
	"slices"
	"sync"

	"github.com/google/btree"

	"github.com/luxfi/aggsig/database"
)

// Name is the database type selected by this backend.
const Name = "memdb"

// degree is the branching factor of the backing b-tree.
const degree = 32

var _ database.Database = (*Database)(nil)

type entry struct {
	key   string
	value []byte
}

func less(a, b entry) bool {
	return a.key < b.key
}

// Database is an ephemeral key-value store kept in key order.
type Database struct {
	lock sync.RWMutex
	db   *btree.BTreeG[entry]
}

// New returns an empty in-memory database.
func New() *Database {
	return &Database{
		db: btree.NewG(degree, less),
	}
}

func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.db == nil {
		return database.ErrClosed
	}
	db.db = nil
	return nil
}

func (db *Database) isClosed() bool {
	return db.db == nil
}

func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.isClosed() {
		return false, database.ErrClosed
	}
	return db.db.Has(entry{key: string(key)}), nil
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.isClosed() {
		return nil, database.ErrClosed
	}
	e, ok := db.db.Get(entry{key: string(key)})
	if !ok {
		return nil, database.ErrNotFound
	}
	return slices.Clone(e.value), nil
}

func (db *Database) Create(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.isClosed() {
		return database.ErrClosed
	}
	e := entry{key: string(key)}
	if db.db.Has(e) {
		return database.ErrAlreadyExists
	}
	e.value = slices.Clone(value)
	db.db.ReplaceOrInsert(e)
	return nil
}

func (db *Database) NewIterator() database.Iterator {
	return db.NewIteratorWithPrefix(nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.isClosed() {
		return &database.IteratorError{
			Err: database.ErrClosed,
		}
	}
	return newIterator(db.db, prefix)
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.isClosed() {
		return nil, database.ErrClosed
	}
	return nil, nil
}
