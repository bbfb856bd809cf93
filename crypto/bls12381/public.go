// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bls12381

import (
	"fmt"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/luxfi/aggsig/curve"
)

const (
	PublicKeyLen             = blst.BLST_P2_COMPRESS_BYTES
	UncompressedPublicKeyLen = blst.BLST_P2_SERIALIZE_BYTES
)

type (
	PublicKey          = blst.P2Affine
	AggregatePublicKey = blst.P2Aggregate
)

// PublicKeyToCompressedBytes returns the compressed big-endian format of the
// public key.
func PublicKeyToCompressedBytes(pk *PublicKey) []byte {
	return pk.Compress()
}

// PublicKeyFromCompressedBytes parses the compressed big-endian format of the
// public key into a public key.
func PublicKeyFromCompressedBytes(pkBytes []byte) (*PublicKey, error) {
	if len(pkBytes) != PublicKeyLen {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			curve.ErrDecompressionFailed, PublicKeyLen, len(pkBytes))
	}
	pk := new(PublicKey).Uncompress(pkBytes)
	return validatePublicKey(pk)
}

// PublicKeyToUncompressedBytes returns the uncompressed big-endian format of
// the public key.
func PublicKeyToUncompressedBytes(pk *PublicKey) []byte {
	return pk.Serialize()
}

// PublicKeyFromUncompressedBytes parses the uncompressed big-endian format of
// the public key into a public key.
func PublicKeyFromUncompressedBytes(pkBytes []byte) (*PublicKey, error) {
	if len(pkBytes) != UncompressedPublicKeyLen {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			curve.ErrDecompressionFailed, UncompressedPublicKeyLen, len(pkBytes))
	}
	pk := new(PublicKey).Deserialize(pkBytes)
	return validatePublicKey(pk)
}

func validatePublicKey(pk *PublicKey) (*PublicKey, error) {
	if pk == nil {
		return nil, fmt.Errorf("%w: invalid public key encoding", curve.ErrDecompressionFailed)
	}
	if !pk.InG2() {
		return nil, fmt.Errorf("%w: public key is not in G2", curve.ErrDecompressionFailed)
	}
	return pk, nil
}

// AggregatePublicKeys returns the sum of the public keys. [pks] must be
// non-empty.
func AggregatePublicKeys(pks []*PublicKey) *PublicKey {
	var agg AggregatePublicKey
	agg.Aggregate(pks, false)
	return agg.ToAffine()
}

type publicKeyGroup struct{}

func (publicKeyGroup) Name() string {
	return "bls12381/G2"
}

func (publicKeyGroup) Add(a, b *PublicKey) *PublicKey {
	return AggregatePublicKeys([]*PublicKey{a, b})
}

func (publicKeyGroup) IsIdentity(pk *PublicKey) bool {
	return pk.Equals(new(PublicKey))
}

func (publicKeyGroup) Compress(pk *PublicKey) ([]byte, error) {
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
