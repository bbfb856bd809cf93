// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dbtest holds the behaviour every database.Database implementation
// must share. Each backend runs Tests against a fresh instance.
package dbtest

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/aggsig/database"
)

// Tests is a list of all database tests
var Tests = map[string]func(t *testing.T, db database.Database){
	"CreateGet":         TestCreateGet,
	"CreateExisting":    TestCreateExisting,
	"GetNotFound":       TestGetNotFound,
	"Has":               TestHas,
	"ValueImmutability": TestValueImmutability,
	"IteratorPrefix":    TestIteratorPrefix,
	"IteratorOrder":     TestIteratorOrder,
	"Count":             TestCount,
	"ConcurrentCreate":  TestConcurrentCreate,
	"HealthCheck":       TestHealthCheck,
	"Closed":            TestClosed,
}

// TestCreateGet tests basic Create and Get operations
func TestCreateGet(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	value := []byte("world")

	require.NoError(db.Create(key, value))

	retrieved, err := db.Get(key)
	require.NoError(err)
	require.Equal(value, retrieved)
}

// TestCreateExisting tests that a second Create of the same key is rejected
// and leaves the first value in place.
func TestCreateExisting(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	first := []byte("world")
	second := []byte("planet")

	require.NoError(db.Create(key, first))
	err := db.Create(key, second)
	require.ErrorIs(err, database.ErrAlreadyExists)

	retrieved, err := db.Get(key)
	require.NoError(err)
	require.Equal(first, retrieved)
}

// TestGetNotFound tests Get on a missing key
func TestGetNotFound(t *testing.T, db database.Database) {
	require := require.New(t)

	_, err := db.Get([]byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)
}

// TestHas tests Has before and after Create
func TestHas(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")

	has, err := db.Has(key)
	require.NoError(err)
	require.False(has)

	require.NoError(db.Create(key, []byte("world")))

	has, err = db.Has(key)
	require.NoError(err)
	require.True(has)
}

// TestValueImmutability tests that modifying the inputs after Create does not
// change the stored value.
func TestValueImmutability(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	value := []byte("world")
	require.NoError(db.Create(key, value))

	value[0] = 'W'
	key[0] = 'H'

	retrieved, err := db.Get([]byte("hello"))
	require.NoError(err)
	require.Equal([]byte("world"), retrieved)
}

// TestIteratorPrefix tests that a prefix iterator only yields matching keys
func TestIteratorPrefix(t *testing.T, db database.Database) {
	require := require.New(t)

	require.NoError(db.Create([]byte("a/1"), []byte("v1")))
	require.NoError(db.Create([]byte("b/1"), []byte("v2")))
	require.NoError(db.Create([]byte("b/2"), []byte("v3")))
	require.NoError(db.Create([]byte("c/1"), []byte("v4")))

	iter := db.NewIteratorWithPrefix([]byte("b/"))
	defer iter.Release()

	require.True(iter.Next())
	require.Equal([]byte("b/1"), iter.Key())
	require.Equal([]byte("v2"), iter.Value())

	require.True(iter.Next())
	require.Equal([]byte("b/2"), iter.Key())
	require.Equal([]byte("v3"), iter.Value())

	require.False(iter.Next())
	require.Nil(iter.Key())
	require.Nil(iter.Value())
	require.NoError(iter.Error())
}

// TestIteratorOrder tests that a full iteration yields keys in ascending order
func TestIteratorOrder(t *testing.T, db database.Database) {
	require := require.New(t)

	expected := [][]byte{
		{0x00},
		{0x00, 0xff},
		{0x01},
		{0x7f, 0x00},
		{0xff},
		{0xff, 0xff},
	}
	for _, i := range []int{4, 1, 5, 0, 3, 2} {
		require.NoError(db.Create(expected[i], []byte{byte(i)}))
	}

	iter := db.NewIterator()
	defer iter.Release()

	var keys [][]byte
	for iter.Next() {
		keys = append(keys, slices.Clone(iter.Key()))
	}
	require.NoError(iter.Error())
	require.Equal(expected, keys)
}

// TestCount tests database.Count and database.Keys over a prefix
func TestCount(t *testing.T, db database.Database) {
	require := require.New(t)

	prefix := []byte("signer/")
	for i := 0; i < 10; i++ {
		require.NoError(db.Create(database.PrefixKey(prefix, []byte{byte(i)}), []byte("v")))
	}
	require.NoError(db.Create([]byte("other"), []byte("v")))

	count, err := database.Count(db, prefix)
	require.NoError(err)
	require.Equal(10, count)

	keys, err := database.Keys(db, prefix)
	require.NoError(err)
	require.Len(keys, 10)
	for i, key := range keys {
		require.Equal([]byte{byte(i)}, key)
	}
}

// TestConcurrentCreate tests that exactly one of many concurrent creates of
// the same key succeeds.
func TestConcurrentCreate(t *testing.T, db database.Database) {
	require := require.New(t)

	const numWriters = 16
	key := []byte("contended")

	var (
		wg        sync.WaitGroup
		errs      = make([]error, numWriters)
		startGate = make(chan struct{})
	)
	for i := 0; i < numWriters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-startGate
			errs[i] = db.Create(key, []byte(fmt.Sprintf("writer-%d", i)))
		}(i)
	}
	close(startGate)
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(-1, winner, "more than one create succeeded")
			winner = i
			continue
		}
		require.ErrorIs(err, database.ErrAlreadyExists)
	}
	require.NotEqual(-1, winner)

	value, err := db.Get(key)
	require.NoError(err)
	require.Equal([]byte(fmt.Sprintf("writer-%d", winner)), value)
}

// TestHealthCheck tests that an open database reports healthy
func TestHealthCheck(t *testing.T, db database.Database) {
	_, err := db.HealthCheck(context.Background())
	require.NoError(t, err)
}

// TestClosed tests that every operation fails with ErrClosed after Close
func TestClosed(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	require.NoError(db.Create(key, []byte("world")))
	require.NoError(db.Close())

	_, err := db.Has(key)
	require.ErrorIs(err, database.ErrClosed)

	_, err = db.Get(key)
	require.ErrorIs(err, database.ErrClosed)

	err = db.Create([]byte("other"), []byte("value"))
	require.ErrorIs(err, database.ErrClosed)

	iter := db.NewIteratorWithPrefix(nil)
	require.False(iter.Next())
	require.ErrorIs(iter.Error(), database.ErrClosed)
	iter.Release()

	_, err = db.HealthCheck(context.Background())
	require.ErrorIs(err, database.ErrClosed)
}

// FuzzCreateGet checks that whatever is created can be read back unchanged
func FuzzCreateGet(f *testing.F, db database.Database) {
	f.Fuzz(func(t *testing.T, key []byte, value []byte) {
		require := require.New(t)

		if len(key) == 0 {
			t.Skip("empty keys are not used")
		}
		err := db.Create(key, value)
		if err != nil {
			require.ErrorIs(err, database.ErrAlreadyExists)
			return
		}

		got, err := db.Get(key)
		require.NoError(err)
		require.True(bytes.Equal(value, got))
	})
}
