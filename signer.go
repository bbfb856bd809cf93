// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package aggsig

import (
	"fmt"

	"github.com/luxfi/aggsig/crypto/bls12381"
	"github.com/luxfi/aggsig/crypto/bn254"
	"github.com/luxfi/aggsig/curve"
)

// Signer holds one secret key. Verification never needs a Signer; it exists
// for tooling and tests.
type Signer interface {
	// PublicKey returns the compressed public key.
	PublicKey() []byte
	// StoredPublicKey returns the uncompressed public key accepted by
	// Register.
	StoredPublicKey() []byte
	// Sign returns the compressed signature of [msg].
	Sign(msg []byte) ([]byte, error)
	// Bytes returns the secret key.
	Bytes() []byte
}

type signer[K, S any] struct {
	scheme curve.Scheme[K, S]
	sk     curve.SecretKey[K, S]
}

// GenerateSigner returns a Signer with a fresh random key for [scheme].
func GenerateSigner(scheme string) (Signer, error) {
	switch scheme {
	case bn254.Name:
		return generateSigner[*bn254.PublicKey, *bn254.Signature](bn254.Scheme{})
	case bls12381.Name:
		return generateSigner[*bls12381.PublicKey, *bls12381.Signature](bls12381.Scheme{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// SignerFromBytes parses the output of Signer.Bytes for [scheme].
func SignerFromBytes(scheme string, b []byte) (Signer, error) {
	switch scheme {
	case bn254.Name:
		return parseSigner[*bn254.PublicKey, *bn254.Signature](bn254.Scheme{}, b)
	case bls12381.Name:
		return parseSigner[*bls12381.PublicKey, *bls12381.Signature](bls12381.Scheme{}, b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

func generateSigner[K, S any](scheme curve.Scheme[K, S]) (Signer, error) {
	sk, err := scheme.GenerateSecretKey()
	if err != nil {
		return nil, err
	}
	return &signer[K, S]{scheme: scheme, sk: sk}, nil
}

func parseSigner[K, S any](scheme curve.Scheme[K, S], b []byte) (Signer, error) {
	sk, err := scheme.SecretKeyFromBytes(b)
	if err != nil {
		return nil, err
	}
	return &signer[K, S]{scheme: scheme, sk: sk}, nil
}

func (s *signer[K, S]) PublicKey() []byte {
	b, err := s.scheme.Keys().Compress(s.sk.PublicKey())
	if err != nil {
		panic(fmt.Sprintf("couldn't compress %s public key: %s", s.scheme.Name(), err))
	}
	return b
}

func (s *signer[K, S]) StoredPublicKey() []byte {
	return s.scheme.Keys().Uncompressed(s.sk.PublicKey())
}

func (s *signer[K, S]) Sign(msg []byte) ([]byte, error) {
	sig, err := s.sk.Sign(msg)
	if err != nil {
		return nil, err
	}
	return s.scheme.Signatures().Compress(sig)
}

func (s *signer[K, S]) Bytes() []byte {
	return s.sk.Bytes()
}
