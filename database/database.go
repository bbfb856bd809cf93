// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package database defines the key-value store that backs the signer
// registry. Records are written once and never overwritten or removed, so the
// write surface is a single atomic create.
package database

import (
	"context"
	"io"
)

// KeyValueReader wraps the Has and Get method of a backing data store.
type KeyValueReader interface {
	// Has retrieves if a key is present in the key-value data store.
	//
	// Note: [key] is safe to modify and read after calling Has.
	Has(key []byte) (bool, error)

	// Get retrieves the given key if it's present in the key-value data store.
	// Returns ErrNotFound if the key is not present in the key-value data store.
	//
	// Note: [key] is safe to modify and read after calling Get.
	// The returned byte slice is safe to read, but cannot be modified.
	Get(key []byte) ([]byte, error)
}

// KeyValueCreator wraps the Create method of a backing data store.
type KeyValueCreator interface {
	// Create inserts [value] under [key] only if [key] is not yet present.
	// Returns ErrAlreadyExists, without modifying the stored value, if
	// [key] is present. Concurrent creates of the same key succeed at most
	// once.
	//
	// Note: [key] and [value] are safe to modify and read after calling
	// Create.
	Create(key []byte, value []byte) error
}

// KeyValueReaderCreator allows read/create access to a backing data store.
type KeyValueReaderCreator interface {
	KeyValueReader
	KeyValueCreator
}

// Iterator iterates over a database's key/value pairs in ascending key order.
//
// When it encounters an error any seek will return false and will yield no key/
// value pairs. The error can be queried by calling the Error method. Calling
// Release is still necessary.
//
// An iterator must be released after use, but it is not necessary to read an
// iterator until exhaustion. An iterator is not safe for concurrent use, but it
// is safe to use multiple iterators concurrently.
type Iterator interface {
	// Next moves the iterator to the next key/value pair. It returns whether
	// the iterator successfully moved to a new key/value pair.
	Next() bool

	// Error returns any accumulated error. Exhausting all the key/value pairs
	// is not considered to be an error.
	Error() error

	// Key returns the key of the current key/value pair, or nil if done.
	Key() []byte

	// Value returns the value of the current key/value pair, or nil if done.
	Value() []byte

	// Release releases associated resources. Release should always succeed and
	// can be called multiple times without causing error.
	Release()
}

// Iteratee wraps the NewIterator methods of a backing data store.
type Iteratee interface {
	// NewIterator creates an iterator over the entire keyspace contained within
	// the key-value database.
	NewIterator() Iterator

	// NewIteratorWithPrefix creates an iterator over a subset of database
	// content with a particular key prefix.
	//
	// Note: [prefix] is safe to modify and read after calling
	// NewIteratorWithPrefix.
	NewIteratorWithPrefix(prefix []byte) Iterator
}

// Database contains all the methods required to allow handling different
// key-value data stores backing the registry.
type Database interface {
	KeyValueReaderCreator
	Iteratee
	io.Closer
	HealthCheck(context.Context) (interface{}, error)
}
