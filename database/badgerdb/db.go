// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package badgerdb

import (
	"context"
	"errors"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/luxfi/aggsig/database"
	"github.com/luxfi/aggsig/logging"
)

// Name is the database type selected by this backend.
const Name = "badgerdb"

const (
	gcInterval     = 5 * time.Minute
	gcDiscardRatio = 0.5
)

var (
	_ database.Database = (*Database)(nil)

	errPathRequired = errors.New("badgerdb: database path required")
)

// Config tunes the badger engine. Zero values keep the defaults.
type Config struct {
	NumCompactors  int    `yaml:"numCompactors"`
	MemTableSize   int64  `yaml:"memTableSize"`
	BlockCacheSize int64  `yaml:"blockCacheSize"`
	IndexCacheSize int64  `yaml:"indexCacheSize"`
	Compression    string `yaml:"compression"`
}

// Database is a badgerdb backed database
type Database struct {
	db      *badger.DB
	closed  bool
	closeMu sync.RWMutex

	stopGC chan struct{}
	gcDone chan struct{}
}

// New returns a new badgerdb-backed database
func New(path string, cfg Config, log logging.Logger) (*Database, error) {
	if path == "" {
		return nil, errPathRequired
	}

	opts := badger.DefaultOptions(path)
	if log != nil {
		opts.Logger = &badgerLogger{log: log}
	} else {
		opts.Logger = nil // Silent mode by default
	}

	// Every record is small and immutable.
	opts.SyncWrites = true
	opts.NumVersionsToKeep = 1
	opts.CompactL0OnClose = true
	opts.Compression = options.Snappy
	applyConfig(&opts, cfg)

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	d := &Database{
		db:     badgerDB,
		stopGC: make(chan struct{}),
		gcDone: make(chan struct{}),
	}
	go d.runGC()
	return d, nil
}

func applyConfig(opts *badger.Options, cfg Config) {
	if cfg.NumCompactors > 0 {
		opts.NumCompactors = cfg.NumCompactors
	}
	if cfg.MemTableSize > 0 {
		opts.MemTableSize = cfg.MemTableSize
	}
	if cfg.BlockCacheSize > 0 {
		opts.BlockCacheSize = cfg.BlockCacheSize
	}
	if cfg.IndexCacheSize > 0 {
		opts.IndexCacheSize = cfg.IndexCacheSize
	}
	switch cfg.Compression {
	case "snappy":
		opts.Compression = options.Snappy
	case "zstd":
		opts.Compression = options.ZSTD
	case "none":
		opts.Compression = options.None
	}
}

// runGC reclaims value log space in the background until Close.
func (d *Database) runGC() {
	defer close(d.gcDone)

	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-d.stopGC:
			return
		case <-ticker.C:
			// ErrNoRewrite just means nothing was reclaimed.
			_ = d.db.RunValueLogGC(gcDiscardRatio)
		}
	}
}

// Close implements the Database interface
func (d *Database) Close() error {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()

	if d.closed {
		return database.ErrClosed
	}
	d.closed = true

	close(d.stopGC)
	<-d.gcDone
	return d.db.Close()
}

// HealthCheck returns the on-disk sizes of the LSM tree and value log.
func (d *Database) HealthCheck(context.Context) (interface{}, error) {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed {
		return nil, database.ErrClosed
	}
	lsm, vlog := d.db.Size()
	return map[string]int64{
		"lsm":  lsm,
		"vlog": vlog,
	}, nil
}

// Has implements the Database interface
func (d *Database) Has(key []byte) (bool, error) {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed {
		return false, database.ErrClosed
	}

	var exists bool
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			exists = true
			return nil
		}
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	return exists, err
}

// Get implements the Database interface
func (d *Database) Get(key []byte) ([]byte, error) {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed {
		return nil, database.ErrClosed
	}

	var value []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return database.ErrNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Create implements the Database interface. The existence check and the write
// share one transaction, so a racing create of the same key surfaces as a
// commit conflict and is retried against the now visible record.
func (d *Database) Create(key []byte, value []byte) error {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed {
		return database.ErrClosed
	}

	for {
		err := d.db.Update(func(txn *badger.Txn) error {
			_, err := txn.Get(key)
			switch {
			case err == nil:
				return database.ErrAlreadyExists
			case !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}
			return txn.Set(key, value)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
}

// NewIterator implements the Database interface
func (d *Database) NewIterator() database.Iterator {
	return d.NewIteratorWithPrefix(nil)
}

// NewIteratorWithPrefix implements the Database interface
func (d *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed {
		return &database.IteratorError{Err: database.ErrClosed}
	}

	txn := d.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 10
	opts.Prefix = append([]byte{}, prefix...)

	it := txn.NewIterator(opts)
	it.Rewind()
	return &iterator{
		txn:  txn,
		iter: it,
		db:   d,
	}
}

type iterator struct {
	mu      sync.Mutex
	txn     *badger.Txn
	iter    *badger.Iterator
	db      *Database
	started bool
	closed  bool
	err     error
	key     []byte
	value   []byte
}

// Next implements the Iterator interface
func (i *iterator) Next() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.key, i.value = nil, nil
	if i.closed || i.err != nil {
		return false
	}

	i.db.closeMu.RLock()
	dbClosed := i.db.closed
	i.db.closeMu.RUnlock()
	if dbClosed {
		i.err = database.ErrClosed
		return false
	}

	if i.started {
		// Badger's Next panics when the iterator is not valid.
		if !i.iter.Valid() {
			return false
		}
		i.iter.Next()
	}
	i.started = true

	if !i.iter.Valid() {
		return false
	}

	item := i.iter.Item()
	value, err := item.ValueCopy(nil)
	if err != nil {
		i.err = err
		return false
	}
	i.key = item.KeyCopy(nil)
	i.value = value
	return true
}

// Error implements the Iterator interface
func (i *iterator) Error() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.err
}

// Key implements the Iterator interface
func (i *iterator) Key() []byte {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.key
}

// Value implements the Iterator interface
func (i *iterator) Value() []byte {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.value
}

// Release implements the Iterator interface
func (i *iterator) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return
	}
	i.closed = true
	i.key, i.value = nil, nil
	i.iter.Close()
	i.txn.Discard()
}

// badgerLogger routes badger's engine logs to the service logger
type badgerLogger struct {
	log logging.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Info(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(format, args...)
}
