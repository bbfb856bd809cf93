// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package curve describes the capabilities the aggregation protocol needs from
// a pairing-friendly curve. A backend supplies one Group for signatures, one
// KeyGroup for public keys, and the pairing check that binds them.
package curve

import "errors"

// ErrDecompressionFailed is returned when bytes do not decode to exactly one
// valid element of the expected group.
var ErrDecompressionFailed = errors.New("decompression failed")

// Group is an additive group with a canonical compressed encoding.
type Group[E any] interface {
	// Name identifies the group in logs and errors.
	Name() string

	// Add returns a + b. Neither argument is modified.
	Add(a, b E) E

	// IsIdentity reports whether e is the point at infinity.
	IsIdentity(e E) bool

	// Compress returns the canonical compressed encoding of e.
	Compress(e E) ([]byte, error)

	// Decompress parses a canonical compressed encoding. Wrong lengths,
	// points off the curve and points outside the prime order subgroup all
	// return ErrDecompressionFailed.
	Decompress(b []byte) (E, error)

	// CompressedLen is the exact length accepted by Decompress.
	CompressedLen() int
}

// KeyGroup is the group public keys live in. Keys at rest are kept in the
// uncompressed encoding.
type KeyGroup[K any] interface {
	Group[K]

	// Uncompressed returns the canonical uncompressed encoding of k.
	Uncompressed(k K) []byte

	// FromUncompressed parses the canonical uncompressed encoding with the
	// same checks as Decompress.
	FromUncompressed(b []byte) (K, error)

	// UncompressedLen is the exact length accepted by FromUncompressed.
	UncompressedLen() int
}

// Scheme is a multi-signature scheme over a pairing-friendly curve.
type Scheme[K, S any] interface {
	// Name identifies the scheme, for example "bn254".
	Name() string

	// Keys returns the group public keys are drawn from.
	Keys() KeyGroup[K]

	// Signatures returns the group signatures are drawn from.
	Signatures() Group[S]

	// Pair reports whether sig is a valid signature of msg under key, that
	// is whether e(g, sig) == e(key, H(msg)) with g the key group generator
	// and H the scheme's fixed hash to the signature group. The error is
	// reserved for failures to evaluate the check.
	Pair(key K, sig S, msg []byte) (bool, error)

	// GenerateSecretKey returns a fresh random signing key.
	GenerateSecretKey() (SecretKey[K, S], error)

	// SecretKeyFromBytes parses the output of SecretKey.Bytes.
	SecretKeyFromBytes(b []byte) (SecretKey[K, S], error)
}

// SecretKey signs on behalf of one signer. Only tooling and tests hold secret
// keys; verification never needs them.
type SecretKey[K, S any] interface {
	PublicKey() K
	Sign(msg []byte) (S, error)
	Bytes() []byte
}
