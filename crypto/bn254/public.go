// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bn254

import (
	"fmt"

	bn "github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/luxfi/aggsig/curve"
)

const (
	PublicKeyLen             = bn.SizeOfG2AffineCompressed
	UncompressedPublicKeyLen = bn.SizeOfG2AffineUncompressed
)

type PublicKey = bn.G2Affine

// PublicKeyToCompressedBytes returns the compressed big-endian format of the
// public key.
func PublicKeyToCompressedBytes(pk *PublicKey) []byte {
	b := pk.Bytes()
	return b[:]
}

// PublicKeyFromCompressedBytes parses the compressed big-endian format of the
// public key into a public key.
func PublicKeyFromCompressedBytes(pkBytes []byte) (*PublicKey, error) {
	return decodePublicKey(pkBytes, PublicKeyLen)
}

// PublicKeyToUncompressedBytes returns the uncompressed big-endian format of
// the public key.
func PublicKeyToUncompressedBytes(pk *PublicKey) []byte {
	b := pk.RawBytes()
	return b[:]
}

// PublicKeyFromUncompressedBytes parses the uncompressed big-endian format of
// the public key into a public key.
func PublicKeyFromUncompressedBytes(pkBytes []byte) (*PublicKey, error) {
	return decodePublicKey(pkBytes, UncompressedPublicKeyLen)
}

// decodePublicKey requires [pkBytes] to be exactly one encoding of length
// [expectedLen]. The flag bits of the first byte select the encoding, so a
// compressed key padded to the uncompressed length is rejected by the length
// consumed.
func decodePublicKey(pkBytes []byte, expectedLen int) (*PublicKey, error) {
	if len(pkBytes) != expectedLen {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			curve.ErrDecompressionFailed, expectedLen, len(pkBytes))
	}
	pk := new(PublicKey)
	n, err := pk.SetBytes(pkBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", curve.ErrDecompressionFailed, err)
	}
	if n != expectedLen {
		return nil, fmt.Errorf("%w: public key encoding is %d bytes, expected %d",
			curve.ErrDecompressionFailed, n, expectedLen)
	}
	return pk, nil
}

// AggregatePublicKeys returns the sum of the public keys. [pks] must be
// non-empty.
func AggregatePublicKeys(pks []*PublicKey) *PublicKey {
	agg := *pks[0]
	for _, pk := range pks[1:] {
		agg.Add(&agg, pk)
	}
	return &agg
}

type publicKeyGroup struct{}

func (publicKeyGroup) Name() string {
	return "bn254/G2"
}

func (publicKeyGroup) Add(a, b *PublicKey) *PublicKey {
	return new(PublicKey).Add(a, b)
}

func (publicKeyGroup) IsIdentity(pk *PublicKey) bool {
	return pk.IsInfinity()
}

func (publicKeyGroup) Compress(pk *PublicKey) ([]byte, error) {
	if !pk.IsOnCurve() {
		return nil, errNotOnCurve
	}
	return PublicKeyToCompressedBytes(pk), nil
}

func (publicKeyGroup) Decompress(b []byte) (*PublicKey, error) {
	return PublicKeyFromCompressedBytes(b)
}

func (publicKeyGroup) CompressedLen() int {
	return PublicKeyLen
}

func (publicKeyGroup) Uncompressed(pk *PublicKey) []byte {
	return PublicKeyToUncompressedBytes(pk)
}

func (publicKeyGroup) FromUncompressed(b []byte) (*PublicKey, error) {
	return PublicKeyFromUncompressedBytes(b)
}

func (publicKeyGroup) UncompressedLen() int {
	return UncompressedPublicKeyLen
}
