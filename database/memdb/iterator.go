// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package memdb

import (
	"strings"

	"github.com/google/btree"

	"github.com/luxfi/aggsig/database"
)

var _ database.Iterator = (*iterator)(nil)

// iterator is a snapshot of the entries that matched the prefix when it was
// created. Later creates are not observed.
type iterator struct {
	entries []entry

	idx int
}

// newIterator must be called with the database read lock held.
func newIterator(tree *btree.BTreeG[entry], prefix []byte) *iterator {
	p := string(prefix)

	var entries []entry
	tree.AscendGreaterOrEqual(entry{key: p}, func(e entry) bool {
		if !strings.HasPrefix(e.key, p) {
			return false
		}
		entries = append(entries, e)
		return true
	})

	return &iterator{
		entries: entries,
		idx:     -1, // Next() increments before returning
	}
}

// Next implements database.Iterator.
func (it *iterator) Next() bool {
	if it.idx >= len(it.entries) {
		return false
	}
	it.idx++
	return it.idx < len(it.entries)
}

// Error implements database.Iterator.
func (*iterator) Error() error {
	return nil
}

// Key implements database.Iterator.
func (it *iterator) Key() []byte {
	if it.idx < 0 || it.idx >= len(it.entries) {
		return nil
	}
	return []byte(it.entries[it.idx].key)
}

// Value implements database.Iterator.
func (it *iterator) Value() []byte {
	if it.idx < 0 || it.idx >= len(it.entries) {
		return nil
	}
	return it.entries[it.idx].value
}

// Release implements database.Iterator.
func (it *iterator) Release() {
	it.entries = nil
}
