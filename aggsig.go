// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package aggsig verifies that a message was signed by every member of a set
// of signers using one aggregated pairing-based multi-signature.
//
// Verification runs in one of two modes. Stateless verification is given the
// aggregated public key directly. Stateful verification is given the
// identities of the signers and aggregates their keys from a registry in
// which each signer's key was recorded once.
package aggsig

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/aggsig/config"
	"github.com/luxfi/aggsig/crypto/bls12381"
	"github.com/luxfi/aggsig/crypto/bn254"
	"github.com/luxfi/aggsig/curve"
	"github.com/luxfi/aggsig/database"
	"github.com/luxfi/aggsig/logging"
	"github.com/luxfi/aggsig/registry"
)

var (
	_ Protocol = (*Service[*bn254.PublicKey, *bn254.Signature])(nil)
	_ Protocol = (*Service[*bls12381.PublicKey, *bls12381.Signature])(nil)
)

// Sizes are the encoded lengths used by a scheme.
type Sizes struct {
	Signature       int `json:"signature"`
	PublicKey       int `json:"publicKey"`
	StoredPublicKey int `json:"storedPublicKey"`
}

// Protocol is the scheme independent surface of a Service.
type Protocol interface {
	// Register records [publicKey], in uncompressed form, for [id]. An
	// identity can be registered once.
	Register(id registry.Identity, publicKey []byte) error

	// VerifyStateless checks [signature] over [message] against the
	// compressed aggregated key [publicKey].
	VerifyStateless(publicKey, signature, message []byte) error

	// VerifyStateful checks [signature] over [message] against the sum of
	// the registered keys of [ids]. Each identity counts once: a list naming
	// an identity twice returns ErrDuplicateIdentity, and a list longer than
	// the configured maximum returns ErrTooManySigners. Both are reported
	// before the registry is read.
	VerifyStateful(ids []registry.Identity, signature, message []byte) error

	// AggregatePublicKeys sums compressed public keys.
	AggregatePublicKeys(publicKeys [][]byte) ([]byte, error)

	// AggregateSignatures sums compressed signatures.
	AggregateSignatures(signatures [][]byte) ([]byte, error)

	// Signers lists registered identities in ascending order.
	Signers() ([]registry.Identity, error)

	Scheme() string
	Sizes() Sizes
}

// Open returns the Protocol for the scheme named by [cfg]. Records are kept in
// [db], which the caller continues to own.
func Open(
	cfg config.Config,
	db database.Database,
	log logging.Logger,
	reg prometheus.Registerer,
) (Protocol, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Scheme {
	case bn254.Name:
		return open[*bn254.PublicKey, *bn254.Signature](bn254.Scheme{}, cfg, db, log, reg)
	case bls12381.Name:
		return open[*bls12381.PublicKey, *bls12381.Signature](bls12381.Scheme{}, cfg, db, log, reg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, cfg.Scheme)
	}
}

func open[K, S any](
	scheme curve.Scheme[K, S],
	cfg config.Config,
	db database.Database,
	log logging.Logger,
	reg prometheus.Registerer,
) (Protocol, error) {
	s, err := New(scheme, cfg, db, log, reg)
	if err != nil {
		return nil, err
	}
	return s, nil
}
