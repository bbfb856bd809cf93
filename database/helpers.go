// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package database

import "slices"

// Count returns the number of keys with the given prefix
func Count(db Iteratee, prefix []byte) (int, error) {
	iter := db.NewIteratorWithPrefix(prefix)
	defer iter.Release()

	count := 0
	for iter.Next() {
		count++
	}
	return count, iter.Error()
}

// Keys returns a copy of every key with the given prefix, with the prefix
// stripped, in ascending order.
func Keys(db Iteratee, prefix []byte) ([][]byte, error) {
	iter := db.NewIteratorWithPrefix(prefix)
	defer iter.Release()

	var keys [][]byte
	for iter.Next() {
		keys = append(keys, slices.Clone(iter.Key()[len(prefix):]))
	}
	return keys, iter.Error()
}

// PrefixKey returns a new slice holding [prefix] followed by [key].
func PrefixKey(prefix, key []byte) []byte {
	k := make([]byte, 0, len(prefix)+len(key))
	k = append(k, prefix...)
	return append(k, key...)
}

var _ Iterator = (*IteratorError)(nil)

// IteratorError does nothing and returns the provided error
type IteratorError struct {
	Err error
}

func (*IteratorError) Next() bool {
	return false
}

func (i *IteratorError) Error() error {
	return i.Err
}

func (*IteratorError) Key() []byte {
	return nil
}

func (*IteratorError) Value() []byte {
	return nil
}

func (*IteratorError) Release() {}
