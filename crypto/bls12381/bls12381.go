// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bls12381 implements the multi-signature scheme over BLS12-381 in
// the minimal-signature-size configuration: signatures in G1 (48 bytes
// compressed) and public keys in G2 (96 bytes compressed, 192 uncompressed).
package bls12381

import "github.com/luxfi/aggsig/curve"

// Name identifies the scheme in configuration.
const Name = "bls12381"

var (
	_ curve.Scheme[*PublicKey, *Signature] = Scheme{}

	// DST is the ciphersuite of the basic min-sig scheme.
	DST = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_")
)

// Scheme is the BLS12-381 min-sig multi-signature scheme.
type Scheme struct{}

func (Scheme) Name() string {
	return Name
}

func (Scheme) Keys() curve.KeyGroup[*PublicKey] {
	return publicKeyGroup{}
}

func (Scheme) Signatures() curve.Group[*Signature] {
	return signatureGroup{}
}

// Pair reports whether e(g2, sig) == e(key, H(msg)). Both points have
// already passed their subgroup checks when decoded.
func (Scheme) Pair(key *PublicKey, sig *Signature, msg []byte) (bool, error) {
	return sig.Verify(false, key, false, msg, DST), nil
}

func (Scheme) GenerateSecretKey() (curve.SecretKey[*PublicKey, *Signature], error) {
	sk, err := NewSecretKey()
	if err != nil {
		return nil, err
	}
	return sk, nil
}

func (Scheme) SecretKeyFromBytes(b []byte) (curve.SecretKey[*PublicKey, *Signature], error) {
	sk, err := SecretKeyFromBytes(b)
	if err != nil {
		return nil, err
	}
	return sk, nil
}
