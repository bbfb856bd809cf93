// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bn254

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/hkdf"
)

const (
	SecretKeyLen = fr.Bytes

	// seedExpansionLen over-samples the scalar field so the reduction of the
	// expanded seed is close to uniform.
	seedExpansionLen = 48
	minSeedLen       = 32
)

var (
	ErrZeroSecretKey = errors.New("secret key is zero")
	errShortSeed     = errors.New("seed must be at least 32 bytes")

	seedInfo = []byte("aggsig bn254 secret key")
)

// SecretKey is a signer's private scalar.
type SecretKey struct {
	scalar fr.Element
}

// NewSecretKey generates a new secret key from the system's randomness.
func NewSecretKey() (*SecretKey, error) {
	sk := &SecretKey{}
	for sk.scalar.IsZero() {
		if _, err := sk.scalar.SetRandom(); err != nil {
			return nil, fmt.Errorf("failed to generate random scalar: %w", err)
		}
	}
	return sk, nil
}

// SecretKeyFromSeed deterministically derives a secret key from [seed] using
// HKDF-SHA256.
func SecretKeyFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) < minSeedLen {
		return nil, errShortSeed
	}
	expanded := make([]byte, seedExpansionLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, nil, seedInfo), expanded); err != nil {
		return nil, err
	}
	sk := &SecretKey{}
	sk.scalar.SetBytes(expanded)
	if sk.scalar.IsZero() {
		return nil, ErrZeroSecretKey
	}
	return sk, nil
}

// SecretKeyFromBytes parses the big-endian format of the secret key.
func SecretKeyFromBytes(skBytes []byte) (*SecretKey, error) {
	if len(skBytes) != SecretKeyLen {
		return nil, fmt.Errorf("invalid secret key length: expected %d, got %d", SecretKeyLen, len(skBytes))
	}
	sk := &SecretKey{}
	if err := sk.scalar.SetBytesCanonical(skBytes); err != nil {
		return nil, fmt.Errorf("invalid secret key: %w", err)
	}
	if sk.scalar.IsZero() {
		return nil, ErrZeroSecretKey
	}
	return sk, nil
}

// Bytes returns the big-endian format of the secret key.
func (sk *SecretKey) Bytes() []byte {
	b := sk.scalar.Bytes()
	return b[:]
}

// PublicKey returns sk * g2.
func (sk *SecretKey) PublicKey() *PublicKey {
	return new(PublicKey).ScalarMultiplication(&g2Gen, sk.scalar.BigInt(new(big.Int)))
}

// Sign returns sk * H(msg).
func (sk *SecretKey) Sign(msg []byte) (*Signature, error) {
	h, err := HashToG1(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash message to G1: %w", err)
	}
	return new(Signature).ScalarMultiplication(&h, sk.scalar.BigInt(new(big.Int))), nil
}
