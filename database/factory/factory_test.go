// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/aggsig/database"
	"github.com/luxfi/aggsig/database/meterdb"
	"github.com/luxfi/aggsig/logging"
)

func TestNewEveryType(t *testing.T) {
	for _, typ := range Types {
		t.Run(typ, func(t *testing.T) {
			require := require.New(t)

			db, err := New(Config{
				Type: typ,
				Path: t.TempDir(),
			}, logging.NoLog{}, nil)
			require.NoError(err)

			require.NoError(db.Create([]byte("k"), []byte("v")))
			require.ErrorIs(db.Create([]byte("k"), []byte("v")), database.ErrAlreadyExists)
			require.NoError(db.Close())
		})
	}
}

func TestNewDefaultsToMemDB(t *testing.T) {
	db, err := New(Config{}, logging.NoLog{}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestNewWrapsWithMetrics(t *testing.T) {
	require := require.New(t)

	reg := prometheus.NewRegistry()
	db, err := New(Config{Metrics: true}, logging.NoLog{}, reg)
	require.NoError(err)
	defer db.Close()

	require.IsType(&meterdb.Database{}, db)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectedErr error
	}{
		{
			name:   "memdb without path",
			config: Config{Type: "memdb"},
		},
		{
			name:        "unknown type",
			config:      Config{Type: "rocksdb", Path: "/tmp/x"},
			expectedErr: ErrUnknownType,
		},
		{
			name:        "persistent without path",
			config:      Config{Type: "pebbledb"},
			expectedErr: errPathRequired,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.config.Validate()
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}
