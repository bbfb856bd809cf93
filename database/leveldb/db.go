// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package leveldb

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/luxfi/aggsig/database"
)

// Name is the database type selected by this backend.
const Name = "leveldb"

const (
	// minBlockCacheSize is the minimum size of the block cache in bytes.
	minBlockCacheSize = 12 * opt.MiB

	// minWriteBufferSize is the minimum size of the write buffer in bytes.
	minWriteBufferSize = 4 * opt.MiB

	// minHandleCap is the minimum number of file handles.
	minHandleCap = 64
)

var (
	_ database.Database = (*Database)(nil)

	syncWrite = &opt.WriteOptions{Sync: true}
)

// Database is a persistent key-value store using LevelDB.
type Database struct {
	db *leveldb.DB

	// createLock serializes the existence check and the write of Create.
	createLock sync.Mutex

	metrics *metrics
}

// New returns a new LevelDB database. If [reg] is non-nil the engine's
// internal statistics are exported to it under [namespace].
func New(
	path string,
	blockCacheSize int,
	writeCacheSize int,
	handleCap int,
	namespace string,
	reg prometheus.Registerer,
) (*Database, error) {
	// Enforce minimums
	if blockCacheSize < minBlockCacheSize {
		blockCacheSize = minBlockCacheSize
	}
	if writeCacheSize < minWriteBufferSize {
		writeCacheSize = minWriteBufferSize
	}
	if handleCap < minHandleCap {
		handleCap = minHandleCap
	}

	opts := &opt.Options{
		BlockCacheCapacity:            blockCacheSize,
		WriteBuffer:                   writeCacheSize,
		OpenFilesCacheCapacity:        handleCap,
		CompactionTableSize:           4 * opt.MiB,
		CompactionTableSizeMultiplier: 2.0,
		CompactionL0Trigger:           8,
		DisableSeeksCompaction:        true,
	}

	ldb, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}

	d := &Database{db: ldb}
	if reg != nil {
		d.metrics, err = newMetrics(namespace, reg)
		if err != nil {
			_ = ldb.Close()
			return nil, err
		}
	}
	return d, nil
}

// Close implements database.Database.
func (d *Database) Close() error {
	return updateError(d.db.Close())
}

// HealthCheck implements database.Database. It also refreshes the exported
// engine statistics.
func (d *Database) HealthCheck(context.Context) (interface{}, error) {
	stats := &leveldb.DBStats{}
	if err := d.db.Stats(stats); err != nil {
		return nil, updateError(err)
	}
	if d.metrics != nil {
		d.metrics.update(stats)
	}
	return stats, nil
}

// Has implements database.Database.
func (d *Database) Has(key []byte) (bool, error) {
	has, err := d.db.Has(key, nil)
	return has, updateError(err)
}

// Get implements database.Database.
func (d *Database) Get(key []byte) ([]byte, error) {
	value, err := d.db.Get(key, nil)
	return value, updateError(err)
}

// Create implements database.Database.
func (d *Database) Create(key []byte, value []byte) error {
	d.createLock.Lock()
	defer d.createLock.Unlock()

	has, err := d.db.Has(key, nil)
	if err != nil {
		return updateError(err)
	}
	if has {
		return database.ErrAlreadyExists
	}
	return updateError(d.db.Put(key, value, syncWrite))
}

// NewIterator implements database.Database.
func (d *Database) NewIterator() database.Iterator {
	return d.NewIteratorWithPrefix(nil)
}

// NewIteratorWithPrefix implements database.Database.
func (d *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	var slice *util.Range
	if len(prefix) > 0 {
		slice = util.BytesPrefix(slices.Clone(prefix))
	}
	return &dbIterator{
		Iterator: d.db.NewIterator(slice, nil),
	}
}

// dbIterator is an iterator over a LevelDB database.
type dbIterator struct {
	iterator.Iterator
}

// Next implements database.Iterator.
func (it *dbIterator) Next() bool {
	return it.Iterator.Next()
}

// Error implements database.Iterator.
func (it *dbIterator) Error() error {
	return updateError(it.Iterator.Error())
}

// Key implements database.Iterator.
func (it *dbIterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return it.Iterator.Key()
}

// Value implements database.Iterator.
func (it *dbIterator) Value() []byte {
	if !it.Valid() {
		return nil
	}
	return it.Iterator.Value()
}

// updateError converts a leveldb-specific error to its database equivalent,
// if applicable.
func updateError(err error) error {
	switch {
	case errors.Is(err, leveldb.ErrClosed):
		return database.ErrClosed
	case errors.Is(err, leveldb.ErrNotFound):
		return database.ErrNotFound
	default:
		return err
	}
}
