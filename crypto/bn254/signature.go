// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bn254

import (
	"errors"
	"fmt"

	bn "github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/luxfi/aggsig/curve"
)

const SignatureLen = bn.SizeOfG1AffineCompressed

var errNotOnCurve = errors.New("point is not on the curve")

type Signature = bn.G1Affine

// SignatureToBytes returns the compressed big-endian format of the signature.
func SignatureToBytes(sig *Signature) []byte {
	b := sig.Bytes()
	return b[:]
}

// SignatureFromBytes parses the compressed big-endian format of the signature
// into a signature.
func SignatureFromBytes(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != SignatureLen {
		return nil, fmt.Errorf("%w: signature must be %d bytes, got %d",
			curve.ErrDecompressionFailed, SignatureLen, len(sigBytes))
	}
	sig := new(Signature)
	n, err := sig.SetBytes(sigBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", curve.ErrDecompressionFailed, err)
	}
	if n != SignatureLen {
		return nil, fmt.Errorf("%w: signature encoding is %d bytes, expected %d",
			curve.ErrDecompressionFailed, n, SignatureLen)
	}
	return sig, nil
}

// AggregateSignatures returns the sum of the signatures. [sigs] must be
// non-empty.
func AggregateSignatures(sigs []*Signature) *Signature {
	agg := *sigs[0]
	for _, sig := range sigs[1:] {
		agg.Add(&agg, sig)
	}
	return &agg
}

// Verify reports whether [sig] is a valid signature of [msg] under [pk].
func Verify(pk *PublicKey, sig *Signature, msg []byte) bool {
	if pk == nil || sig == nil {
		return false
	}
	valid, err := Scheme{}.Pair(pk, sig, msg)
	return err == nil && valid
}

type signatureGroup struct{}

func (signatureGroup) Name() string {
	return "bn254/G1"
}

func (signatureGroup) Add(a, b *Signature) *Signature {
	return new(Signature).Add(a, b)
}

func (signatureGroup) IsIdentity(sig *Signature) bool {
	return sig.IsInfinity()
}

func (signatureGroup) Compress(sig *Signature) ([]byte, error) {
	if !sig.IsOnCurve() {
		return nil, errNotOnCurve
	}
	return SignatureToBytes(sig), nil
}

func (signatureGroup) Decompress(b []byte) (*Signature, error) {
	return SignatureFromBytes(b)
}

func (signatureGroup) CompressedLen() int {
	return SignatureLen
}
