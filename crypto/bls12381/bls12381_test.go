// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bls12381

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/aggsig/curve"
)

func newKeys(t testing.TB, n int) []*SecretKey {
	sks := make([]*SecretKey, n)
	for i := range sks {
		sk, err := SecretKeyFromSeed(bytes.Repeat([]byte{byte(i + 1)}, 32))
		require.NoError(t, err)
		sks[i] = sk
	}
	return sks
}

func TestAggregateVerify(t *testing.T) {
	require := require.New(t)

	sks := newKeys(t, 5)
	msg := []byte("500000.23456")

	pks := make([]*PublicKey, len(sks))
	sigs := make([]*Signature, len(sks))
	for i, sk := range sks {
		pks[i] = sk.PublicKey()
		sig, err := sk.Sign(msg)
		require.NoError(err)
		require.True(Verify(pks[i], sig, msg))
		sigs[i] = sig
	}

	aggPK := AggregatePublicKeys(pks)
	aggSig := AggregateSignatures(sigs)
	require.True(Verify(aggPK, aggSig, msg))
	require.False(Verify(aggPK, aggSig, []byte("500000.23457")))
	require.False(Verify(AggregatePublicKeys(pks[1:]), aggSig, msg))
}

func TestPublicKeyEncodings(t *testing.T) {
	require := require.New(t)

	pk := newKeys(t, 1)[0].PublicKey()

	compressed := PublicKeyToCompressedBytes(pk)
	require.Len(compressed, 96)
	parsed, err := PublicKeyFromCompressedBytes(compressed)
	require.NoError(err)
	require.True(parsed.Equals(pk))

	uncompressed := PublicKeyToUncompressedBytes(pk)
	require.Len(uncompressed, 192)
	parsed, err = PublicKeyFromUncompressedBytes(uncompressed)
	require.NoError(err)
	require.True(parsed.Equals(pk))

	_, err = PublicKeyFromCompressedBytes(uncompressed)
	require.ErrorIs(err, curve.ErrDecompressionFailed)
	_, err = PublicKeyFromUncompressedBytes(compressed)
	require.ErrorIs(err, curve.ErrDecompressionFailed)
	_, err = PublicKeyFromUncompressedBytes(make([]byte, UncompressedPublicKeyLen))
	require.ErrorIs(err, curve.ErrDecompressionFailed)
}

func TestSignatureEncoding(t *testing.T) {
	require := require.New(t)

	sig, err := newKeys(t, 1)[0].Sign([]byte("msg"))
	require.NoError(err)

	sigBytes := SignatureToBytes(sig)
	require.Len(sigBytes, 48)
	parsed, err := SignatureFromBytes(sigBytes)
	require.NoError(err)
	require.True(parsed.Equals(sig))

	_, err = SignatureFromBytes(sigBytes[:SignatureLen-1])
	require.ErrorIs(err, curve.ErrDecompressionFailed)
	_, err = SignatureFromBytes(make([]byte, SignatureLen))
	require.ErrorIs(err, curve.ErrDecompressionFailed)
}

func TestSecretKeyBytes(t *testing.T) {
	require := require.New(t)

	sk, err := NewSecretKey()
	require.NoError(err)

	parsed, err := SecretKeyFromBytes(sk.Bytes())
	require.NoError(err)
	require.Equal(sk.Bytes(), parsed.Bytes())
	require.True(parsed.PublicKey().Equals(sk.PublicKey()))

	_, err = SecretKeyFromBytes(sk.Bytes()[1:])
	require.ErrorIs(err, errFailedSecretKeyDeserialize)

	_, err = SecretKeyFromSeed(make([]byte, 31))
	require.ErrorIs(err, errShortIKM)
}

func TestGroups(t *testing.T) {
	require := require.New(t)

	scheme := Scheme{}
	require.Equal(Name, scheme.Name())
	require.Equal(PublicKeyLen, scheme.Keys().CompressedLen())
	require.Equal(UncompressedPublicKeyLen, scheme.Keys().UncompressedLen())
	require.Equal(SignatureLen, scheme.Signatures().CompressedLen())

	require.True(scheme.Keys().IsIdentity(new(PublicKey)))
	require.False(scheme.Keys().IsIdentity(newKeys(t, 1)[0].PublicKey()))
	require.True(scheme.Signatures().IsIdentity(new(Signature)))

	sk, err := scheme.GenerateSecretKey()
	require.NoError(err)
	sig, err := sk.Sign([]byte("m"))
	require.NoError(err)
	ok, err := scheme.Pair(sk.PublicKey(), sig, []byte("m"))
	require.NoError(err)
	require.True(ok)
}

func FuzzSignatureFromBytes(f *testing.F) {
	sig, err := newKeys(f, 1)[0].Sign([]byte("seed"))
	require.NoError(f, err)
	f.Add(SignatureToBytes(sig))
	f.Fuzz(func(t *testing.T, b []byte) {
		sig, err := SignatureFromBytes(b)
		if err != nil {
			require.ErrorIs(t, err, curve.ErrDecompressionFailed)
			return
		}
		require.Equal(t, b, SignatureToBytes(sig))
	})
}
