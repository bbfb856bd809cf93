// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package aggregator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/aggsig/crypto/bls12381"
	"github.com/luxfi/aggsig/crypto/bn254"
	"github.com/luxfi/aggsig/curve"
)

var errNoEncoding = errors.New("no encoding")

// intGroup is the integers under addition with an optionally broken encoding.
type intGroup struct {
	failCompress bool
}

func (intGroup) Name() string { return "int" }
func (intGroup) Add(a, b int) int { return a + b }
func (intGroup) IsIdentity(e int) bool { return e == 0 }
func (intGroup) CompressedLen() int { return 1 }
func (g intGroup) Compress(e int) ([]byte, error) {
	if g.failCompress {
		return nil, errNoEncoding
	}
	return []byte{byte(e)}, nil
}

func (intGroup) Decompress(b []byte) (int, error) {
	if len(b) != 1 {
		return 0, curve.ErrDecompressionFailed
	}
	return int(b[0]), nil
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name        string
		elems       []int
		expected    int
		expectedErr error
	}{
		{
			name:        "empty",
			elems:       nil,
			expectedErr: ErrEmptyAggregationSet,
		},
		{
			name:     "single",
			elems:    []int{7},
			expected: 7,
		},
		{
			name:     "many",
			elems:    []int{1, 2, 3, 4},
			expected: 10,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			result, err := Aggregate[int](intGroup{}, test.elems)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expected, result)
		})
	}
}

func TestAggregateAndCompress(t *testing.T) {
	require := require.New(t)

	b, err := AggregateAndCompress[int](intGroup{}, []int{2, 3})
	require.NoError(err)
	require.Equal([]byte{5}, b)

	_, err = AggregateAndCompress[int](intGroup{}, nil)
	require.ErrorIs(err, ErrEmptyAggregationSet)

	_, err = AggregateAndCompress[int](intGroup{failCompress: true}, []int{1})
	require.ErrorIs(err, ErrCompressionFailed)
	require.ErrorIs(err, errNoEncoding)
}

func TestAggregateCompressed(t *testing.T) {
	require := require.New(t)

	b, err := AggregateCompressed[int](intGroup{}, [][]byte{{1}, {2}})
	require.NoError(err)
	require.Equal([]byte{3}, b)

	_, err = AggregateCompressed[int](intGroup{}, nil)
	require.ErrorIs(err, ErrEmptyAggregationSet)

	_, err = AggregateCompressed[int](intGroup{}, [][]byte{{1}, {2, 3}})
	require.ErrorIs(err, curve.ErrDecompressionFailed)
}

func testCommutative[K, S any](t *testing.T, scheme curve.Scheme[K, S]) {
	require := require.New(t)

	const n = 6
	msg := []byte("500000.23456")
	pks := make([]K, n)
	sigs := make([]S, n)
	for i := range pks {
		sk, err := scheme.GenerateSecretKey()
		require.NoError(err)
		pks[i] = sk.PublicKey()
		sigs[i], err = sk.Sign(msg)
		require.NoError(err)
	}

	expectedPK, err := AggregateAndCompress[K](scheme.Keys(), pks)
	require.NoError(err)
	expectedSig, err := AggregateAndCompress[S](scheme.Signatures(), sigs)
	require.NoError(err)

	for range 5 {
		rand.Shuffle(n, func(i, j int) {
			pks[i], pks[j] = pks[j], pks[i]
			sigs[i], sigs[j] = sigs[j], sigs[i]
		})
		pk, err := AggregateAndCompress[K](scheme.Keys(), pks)
		require.NoError(err)
		require.Equal(expectedPK, pk)

		sig, err := AggregateAndCompress[S](scheme.Signatures(), sigs)
		require.NoError(err)
		require.Equal(expectedSig, sig)
	}

	// Folding compressed inputs matches folding decoded points.
	compressed := make([][]byte, n)
	for i, pk := range pks {
		compressed[i], err = scheme.Keys().Compress(pk)
		require.NoError(err)
	}
	pk, err := AggregateCompressed[K](scheme.Keys(), compressed)
	require.NoError(err)
	require.Equal(expectedPK, pk)
}

func TestCommutative(t *testing.T) {
	t.Run(bn254.Name, func(t *testing.T) {
		testCommutative[*bn254.PublicKey, *bn254.Signature](t, bn254.Scheme{})
	})
	t.Run(bls12381.Name, func(t *testing.T) {
		testCommutative[*bls12381.PublicKey, *bls12381.Signature](t, bls12381.Scheme{})
	})
}
