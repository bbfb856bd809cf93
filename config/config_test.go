// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/aggsig/crypto/bls12381"
	"github.com/luxfi/aggsig/crypto/bn254"
	"github.com/luxfi/aggsig/database/factory"
	"github.com/luxfi/aggsig/database/memdb"
	"github.com/luxfi/aggsig/database/pebbledb"
)

func TestDefault(t *testing.T) {
	require := require.New(t)

	c := Default()
	require.Equal(bn254.Name, c.Scheme)
	require.Equal(DefaultMaxSigners, c.MaxSigners)
	require.Equal(DefaultCacheSize, c.Cache.Size)
	require.Equal(memdb.Name, c.Database.Type)
	require.NoError(c.Validate())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expected    func(*require.Assertions, Config)
		expectedErr error
	}{
		{
			name: "empty document",
			yaml: "",
			expected: func(require *require.Assertions, c Config) {
				require.Equal(Default(), c)
			},
		},
		{
			name: "full",
			yaml: `
scheme: bls12381
maxSigners: 16
namespace: test
database:
  type: pebbledb
  path: /var/lib/aggsig
  metrics: true
cache:
  size: 8
log:
  debug: true
`,
			expected: func(require *require.Assertions, c Config) {
				require.Equal(bls12381.Name, c.Scheme)
				require.Equal(16, c.MaxSigners)
				require.Equal("test", c.Namespace)
				require.Equal(pebbledb.Name, c.Database.Type)
				require.Equal("/var/lib/aggsig", c.Database.Path)
				require.True(c.Database.Metrics)
				require.Equal(8, c.Cache.Size)
				require.True(c.Log.Debug)
			},
		},
		{
			name:        "unknown scheme",
			yaml:        "scheme: ed25519",
			expectedErr: ErrUnknownScheme,
		},
		{
			name:        "negative max signers",
			yaml:        "maxSigners: -1",
			expectedErr: errNonPositiveMaxSigners,
		},
		{
			name:        "negative cache size",
			yaml:        "cache: {size: -1}",
			expectedErr: errNonPositiveCacheSize,
		},
		{
			name:        "unknown database",
			yaml:        "database: {type: rocksdb}",
			expectedErr: factory.ErrUnknownType,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			c, err := Parse([]byte(test.yaml))
			require.ErrorIs(err, test.expectedErr)
			if test.expected != nil {
				test.expected(require, c)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("schemes: bn254"))
	require.ErrorContains(t, err, "couldn't parse config")
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(os.WriteFile(path, []byte("maxSigners: 3\n"), 0o600))

	c, err := Load(path)
	require.NoError(err)
	require.Equal(3, c.MaxSigners)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(err, os.ErrNotExist)
}
