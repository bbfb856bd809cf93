// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package badgerdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/aggsig/database/dbtest"
	"github.com/luxfi/aggsig/logging"
)

func newDB(t testing.TB) *Database {
	db, err := New(t.TempDir(), Config{}, nil)
	require.NoError(t, err)
	return db
}

func TestInterface(t *testing.T) {
	for name, test := range dbtest.Tests {
		t.Run(name, func(t *testing.T) {
			db := newDB(t)
			test(t, db)
			_ = db.Close()
		})
	}
}

func FuzzCreateGet(f *testing.F) {
	db := newDB(f)
	defer db.Close()

	dbtest.FuzzCreateGet(f, db)
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New("", Config{}, logging.NoLog{})
	require.ErrorIs(t, err, errPathRequired)
}

func TestConfigOverrides(t *testing.T) {
	require := require.New(t)

	db, err := New(t.TempDir(), Config{
		NumCompactors: 2,
		Compression:   "zstd",
	}, logging.NoLog{})
	require.NoError(err)
	require.NoError(db.Create([]byte("k"), []byte("v")))
	require.NoError(db.Close())
}
