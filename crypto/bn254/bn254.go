// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bn254 implements the multi-signature scheme over the BN254
// (alt_bn128) curve. Signatures live in G1 and public keys in G2, so a
// compressed signature is 32 bytes, a compressed public key 64 bytes and an
// uncompressed public key 128 bytes.
package bn254

import (
	bn "github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/luxfi/aggsig/curve"
)

// Name identifies the scheme in configuration.
const Name = "bn254"

// DST is the domain separation tag used to hash messages onto G1.
var DST = []byte("BN254G1_XMD:SHA-256_SVDW_RO_MULTISIG_")

var (
	_ curve.Scheme[*PublicKey, *Signature] = Scheme{}

	// negG2Gen is -g2. The pairing check multiplies e(sig, -g2) by
	// e(H(m), pk) and compares the product against one.
	negG2Gen bn.G2Affine
	g2Gen    bn.G2Affine
)

func init() {
	_, _, _, g2Gen = bn.Generators()
	negG2Gen.Neg(&g2Gen)
}

// Scheme is the BN254 multi-signature scheme.
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

// Pair reports whether e(sig, g2) == e(H(msg), key).
func (Scheme) Pair(key *PublicKey, sig *Signature, msg []byte) (bool, error) {
	h, err := HashToG1(msg)
	if err != nil {
		return false, err
	}
	return bn.PairingCheck(
		[]bn.G1Affine{*sig, h},
		[]bn.G2Affine{negG2Gen, *key},
	)
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

// HashToG1 maps msg onto G1 with the scheme's domain separation tag.
func HashToG1(msg []byte) (bn.G1Affine, error) {
	return bn.HashToG1(msg, DST)
}
