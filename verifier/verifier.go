// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verifier checks aggregated signatures against aggregated keys.
package verifier

import (
	"errors"
	"fmt"

	"github.com/luxfi/aggsig/curve"
)

// ErrSignatureInvalid is returned for any signature that does not verify. It
// carries no detail about why.
var ErrSignatureInvalid = errors.New("signature invalid")

// Verifier evaluates the pairing check of a single scheme.
type Verifier[K, S any] struct {
	scheme curve.Scheme[K, S]
}

// New returns a verifier for [scheme].
func New[K, S any](scheme curve.Scheme[K, S]) *Verifier[K, S] {
	return &Verifier[K, S]{scheme: scheme}
}

// Verify reports whether [sig], a compressed signature, was produced over
// [msg] by the signer set whose aggregated key is [key]. A malformed [sig]
// returns curve.ErrDecompressionFailed. Every other rejection returns
// ErrSignatureInvalid.
func (v *Verifier[K, S]) Verify(key K, sig []byte, msg []byte) error {
	s, err := v.scheme.Signatures().Decompress(sig)
	if err != nil {
		return fmt.Errorf("couldn't decode signature: %w", err)
	}
	// The identity pairs with the identity for every message.
	if v.scheme.Keys().IsIdentity(key) || v.scheme.Signatures().IsIdentity(s) {
		return ErrSignatureInvalid
	}

	ok, err := v.scheme.Pair(key, s, msg)
	if err != nil || !ok {
		return ErrSignatureInvalid
	}
	return nil
}

// VerifyCompressed is Verify for a compressed aggregated key.
func (v *Verifier[K, S]) VerifyCompressed(key []byte, sig []byte, msg []byte) error {
	k, err := v.scheme.Keys().Decompress(key)
	if err != nil {
		return fmt.Errorf("couldn't decode public key: %w", err)
	}
	return v.Verify(k, sig, msg)
}
