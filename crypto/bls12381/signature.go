// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bls12381

import (
	"fmt"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/luxfi/aggsig/curve"
)

const SignatureLen = blst.BLST_P1_COMPRESS_BYTES

type (
	Signature          = blst.P1Affine
	AggregateSignature = blst.P1Aggregate
)

// SignatureToBytes returns the compressed big-endian format of the signature.
func SignatureToBytes(sig *Signature) []byte {
	return sig.Compress()
}

// SignatureFromBytes parses the compressed big-endian format of the signature
// into a signature.
func SignatureFromBytes(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != SignatureLen {
		return nil, fmt.Errorf("%w: signature must be %d bytes, got %d",
			curve.ErrDecompressionFailed, SignatureLen, len(sigBytes))
	}
	sig := new(Signature).Uncompress(sigBytes)
	if sig == nil {
		return nil, fmt.Errorf("%w: invalid signature encoding", curve.ErrDecompressionFailed)
	}
	if !sig.SigValidate(false) {
		return nil, fmt.Errorf("%w: signature is not in G1", curve.ErrDecompressionFailed)
	}
	return sig, nil
}

// AggregateSignatures returns the sum of the signatures. [sigs] must be
// non-empty.
func AggregateSignatures(sigs []*Signature) *Signature {
	var agg AggregateSignature
	agg.Aggregate(sigs, false)
	return agg.ToAffine()
}

// Verify reports whether [sig] is a valid signature of [msg] under [pk].
func Verify(pk *PublicKey, sig *Signature, msg []byte) bool {
	if pk == nil || sig == nil {
		return false
	}
	return sig.Verify(false, pk, false, msg, DST)
}

type signatureGroup struct{}

func (signatureGroup) Name() string {
	return "bls12381/G1"
}

func (signatureGroup) Add(a, b *Signature) *Signature {
	return AggregateSignatures([]*Signature{a, b})
}

func (signatureGroup) IsIdentity(sig *Signature) bool {
	return sig.Equals(new(Signature))
}

func (signatureGroup) Compress(sig *Signature) ([]byte, error) {
	return SignatureToBytes(sig), nil
}

func (signatureGroup) Decompress(b []byte) (*Signature, error) {
	return SignatureFromBytes(b)
}

func (signatureGroup) CompressedLen() int {
	return SignatureLen
}
