// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bls12381

import (
	"crypto/rand"
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

const SecretKeyLen = blst.BLST_SCALAR_BYTES

var (
	errFailedSecretKeyDeserialize = errors.New("couldn't deserialize secret key")
	errShortIKM                   = errors.New("key material must be at least 32 bytes")
)

// SecretKey is a signer's private scalar.
type SecretKey struct {
	sk *blst.SecretKey
}

// NewSecretKey generates a new secret key from the system's randomness.
func NewSecretKey() (*SecretKey, error) {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, err
	}
	return SecretKeyFromSeed(ikm[:])
}

// SecretKeyFromSeed derives a secret key from at least 32 bytes of input key
// material.
func SecretKeyFromSeed(ikm []byte) (*SecretKey, error) {
	if len(ikm) < 32 {
		return nil, errShortIKM
	}
	return &SecretKey{sk: blst.KeyGen(ikm)}, nil
}

// SecretKeyFromBytes parses the big-endian format of the secret key.
func SecretKeyFromBytes(skBytes []byte) (*SecretKey, error) {
	sk := new(blst.SecretKey).Deserialize(skBytes)
	if sk == nil {
		return nil, errFailedSecretKeyDeserialize
	}
	return &SecretKey{sk: sk}, nil
}

// Bytes returns the big-endian format of the secret key.
func (sk *SecretKey) Bytes() []byte {
	return sk.sk.Serialize()
}

// PublicKey returns sk * g2.
func (sk *SecretKey) PublicKey() *PublicKey {
	return new(PublicKey).From(sk.sk)
}

// Sign returns sk * H(msg).
func (sk *SecretKey) Sign(msg []byte) (*Signature, error) {
	return new(Signature).Sign(sk.sk, msg, DST), nil
}
