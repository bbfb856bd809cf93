// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package aggsig

import (
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/aggsig/config"
	"github.com/luxfi/aggsig/crypto/bls12381"
	"github.com/luxfi/aggsig/crypto/bn254"
	"github.com/luxfi/aggsig/database/databasemock"
	"github.com/luxfi/aggsig/database/memdb"
	"github.com/luxfi/aggsig/logging"
	"github.com/luxfi/aggsig/registry"
)

var (
	validMessage    = []byte("500000.23456")
	tamperedMessage = []byte("500000.23457")
)

type testSigners struct {
	ids     []registry.Identity
	signers []Signer
}

func newTestSigners(t *testing.T, scheme string, n int) *testSigners {
	s := &testSigners{}
	for i := range n {
		signer, err := GenerateSigner(scheme)
		require.NoError(t, err)
		s.ids = append(s.ids, registry.Identity{byte(i + 1)})
		s.signers = append(s.signers, signer)
	}
	return s
}

func (s *testSigners) publicKeys() [][]byte {
	pks := make([][]byte, len(s.signers))
	for i, signer := range s.signers {
		pks[i] = signer.PublicKey()
	}
	return pks
}

func (s *testSigners) sign(t *testing.T, msg []byte) [][]byte {
	sigs := make([][]byte, len(s.signers))
	for i, signer := range s.signers {
		sig, err := signer.Sign(msg)
		require.NoError(t, err)
		sigs[i] = sig
	}
	return sigs
}

func (s *testSigners) register(t *testing.T, p Protocol) {
	for i, signer := range s.signers {
		require.NoError(t, p.Register(s.ids[i], signer.StoredPublicKey()))
	}
}

func openProtocol(t *testing.T, scheme string) Protocol {
	p, err := Open(
		config.Config{Scheme: scheme},
		memdb.New(),
		logging.NoLog{},
		prometheus.NewRegistry(),
	)
	require.NoError(t, err)
	return p
}

func forEachScheme(t *testing.T, f func(t *testing.T, scheme string)) {
	for _, scheme := range config.Schemes {
		t.Run(scheme, func(t *testing.T) {
			f(t, scheme)
		})
	}
}

// Five signers sign "500000.23456"; the aggregate verifies in both modes and
// fails for "500000.23457".
func TestFiveSigners(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		require := require.New(t)

		p := openProtocol(t, scheme)
		s := newTestSigners(t, scheme, 5)
		s.register(t, p)

		aggPK, err := p.AggregatePublicKeys(s.publicKeys())
		require.NoError(err)
		aggSig, err := p.AggregateSignatures(s.sign(t, validMessage))
		require.NoError(err)

		require.NoError(p.VerifyStateless(aggPK, aggSig, validMessage))
		require.NoError(p.VerifyStateful(s.ids, aggSig, validMessage))

		require.ErrorIs(p.VerifyStateless(aggPK, aggSig, tamperedMessage), ErrSignatureInvalid)
		require.ErrorIs(p.VerifyStateful(s.ids, aggSig, tamperedMessage), ErrSignatureInvalid)

		// One signer signs a different message; the aggregate no longer
		// verifies the original message.
		for i, signer := range s.signers {
			sigs := s.sign(t, validMessage)
			sig, err := signer.Sign(tamperedMessage)
			require.NoError(err)
			sigs[i] = sig

			aggSig, err := p.AggregateSignatures(sigs)
			require.NoError(err)
			require.ErrorIs(p.VerifyStateless(aggPK, aggSig, validMessage), ErrSignatureInvalid)
			require.ErrorIs(p.VerifyStateful(s.ids, aggSig, validMessage), ErrSignatureInvalid)
		}
	})
}

func TestAggregationOrderIndependent(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		require := require.New(t)

		p := openProtocol(t, scheme)
		s := newTestSigners(t, scheme, 6)
		s.register(t, p)

		pks := s.publicKeys()
		sigs := s.sign(t, validMessage)
		expectedPK, err := p.AggregatePublicKeys(pks)
		require.NoError(err)
		expectedSig, err := p.AggregateSignatures(sigs)
		require.NoError(err)

		for range 4 {
			rand.Shuffle(len(pks), func(i, j int) {
				pks[i], pks[j] = pks[j], pks[i]
				sigs[i], sigs[j] = sigs[j], sigs[i]
				s.ids[i], s.ids[j] = s.ids[j], s.ids[i]
			})
			pk, err := p.AggregatePublicKeys(pks)
			require.NoError(err)
			require.Equal(expectedPK, pk)

			sig, err := p.AggregateSignatures(sigs)
			require.NoError(err)
			require.Equal(expectedSig, sig)

			require.NoError(p.VerifyStateful(s.ids, expectedSig, validMessage))
		}
	})
}

func TestSubsetOfSigners(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		require := require.New(t)

		p := openProtocol(t, scheme)
		s := newTestSigners(t, scheme, 5)
		s.register(t, p)

		sigs := s.sign(t, validMessage)
		partialSig, err := p.AggregateSignatures(sigs[:3])
		require.NoError(err)

		require.NoError(p.VerifyStateful(s.ids[:3], partialSig, validMessage))
		// Claiming more signers than signed is rejected.
		require.ErrorIs(p.VerifyStateful(s.ids, partialSig, validMessage), ErrSignatureInvalid)
	})
}

func TestEmptyAggregationSet(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		require := require.New(t)

		p := openProtocol(t, scheme)
		_, err := p.AggregatePublicKeys(nil)
		require.ErrorIs(err, ErrEmptyAggregationSet)
		_, err = p.AggregateSignatures(nil)
		require.ErrorIs(err, ErrEmptyAggregationSet)

		sig, err := newTestSigners(t, scheme, 1).signers[0].Sign(validMessage)
		require.NoError(err)
		require.ErrorIs(p.VerifyStateful(nil, sig, validMessage), ErrEmptyAggregationSet)
	})
}

func TestRegisterOnce(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		require := require.New(t)

		p := openProtocol(t, scheme)
		s := newTestSigners(t, scheme, 2)
		id := s.ids[0]

		require.NoError(p.Register(id, s.signers[0].StoredPublicKey()))
		require.ErrorIs(p.Register(id, s.signers[1].StoredPublicKey()), ErrAlreadyExists)

		// The first key is still the registered one.
		sig, err := s.signers[0].Sign(validMessage)
		require.NoError(err)
		require.NoError(p.VerifyStateful([]registry.Identity{id}, sig, validMessage))
	})
}

func TestRegisterRejectsCompressedKey(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		p := openProtocol(t, scheme)
		s := newTestSigners(t, scheme, 1)
		err := p.Register(s.ids[0], s.signers[0].PublicKey())
		require.ErrorIs(t, err, ErrInvalidRecord)
	})
}

func TestVerifyStatefulUnknownIdentity(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		require := require.New(t)

		p := openProtocol(t, scheme)
		s := newTestSigners(t, scheme, 1)
		sig, err := s.signers[0].Sign(validMessage)
		require.NoError(err)

		err = p.VerifyStateful(s.ids, sig, validMessage)
		require.ErrorIs(err, ErrUnknownIdentity)
		require.ErrorIs(err, ErrInvalidRecord)
	})
}

func TestVerifyMalformedInputs(t *testing.T) {
	forEachScheme(t, func(t *testing.T, scheme string) {
		require := require.New(t)

		p := openProtocol(t, scheme)
		s := newTestSigners(t, scheme, 1)
		s.register(t, p)
		pk := s.signers[0].PublicKey()
		sig, err := s.signers[0].Sign(validMessage)
		require.NoError(err)

		require.ErrorIs(p.VerifyStateless(pk[1:], sig, validMessage), ErrDecompressionFailed)
		require.ErrorIs(p.VerifyStateless(pk, sig[1:], validMessage), ErrDecompressionFailed)
		require.ErrorIs(p.VerifyStateful(s.ids, append(sig, 0), validMessage), ErrDecompressionFailed)

		_, err = p.AggregateSignatures([][]byte{sig, sig[1:]})
		require.ErrorIs(err, ErrDecompressionFailed)
	})
}

func TestSizes(t *testing.T) {
	tests := []struct {
		scheme   string
		expected Sizes
	}{
		{
			scheme: bn254.Name,
			expected: Sizes{
				Signature:       32,
				PublicKey:       64,
				StoredPublicKey: 128,
			},
		},
		{
			scheme: bls12381.Name,
			expected: Sizes{
				Signature:       48,
				PublicKey:       96,
				StoredPublicKey: 192,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.scheme, func(t *testing.T) {
			require := require.New(t)

			p := openProtocol(t, test.scheme)
			require.Equal(test.scheme, p.Scheme())
			require.Equal(test.expected, p.Sizes())

			s := newTestSigners(t, test.scheme, 1)
			require.Len(s.signers[0].PublicKey(), test.expected.PublicKey)
			require.Len(s.signers[0].StoredPublicKey(), test.expected.StoredPublicKey)
			sig, err := s.signers[0].Sign(validMessage)
			require.NoError(err)
			require.Len(sig, test.expected.Signature)
		})
	}
}

func TestOpenUnknownScheme(t *testing.T) {
	_, err := Open(config.Config{Scheme: "ed25519"}, memdb.New(), logging.NoLog{}, nil)
	require.ErrorIs(t, err, ErrUnknownScheme)
}

func TestSigners(t *testing.T) {
	require := require.New(t)

	p := openProtocol(t, bn254.Name)
	s := newTestSigners(t, bn254.Name, 3)
	s.register(t, p)

	ids, err := p.Signers()
	require.NoError(err)
	require.Equal(s.ids, ids)
}

// Limits are enforced before the registry is consulted.
func TestVerifyStatefulLimits(t *testing.T) {
	require := require.New(t)

	ctrl := gomock.NewController(t)
	db := databasemock.NewDatabase(ctrl)
	p, err := Open(
		config.Config{MaxSigners: 2},
		db,
		logging.NoLog{},
		prometheus.NewRegistry(),
	)
	require.NoError(err)

	sig, err := newTestSigners(t, bn254.Name, 1).signers[0].Sign(validMessage)
	require.NoError(err)

	ids := []registry.Identity{{1}, {2}, {3}}
	require.ErrorIs(p.VerifyStateful(ids, sig, validMessage), ErrTooManySigners)

	ids = []registry.Identity{{1}, {1}}
	require.ErrorIs(p.VerifyStateful(ids, sig, validMessage), ErrDuplicateIdentity)
}

func TestMetrics(t *testing.T) {
	require := require.New(t)

	reg := prometheus.NewRegistry()
	p, err := Open(config.Config{}, memdb.New(), logging.NoLog{}, reg)
	require.NoError(err)
	s := newTestSigners(t, bn254.Name, 2)
	s.register(t, p)
	require.ErrorIs(p.Register(s.ids[0], s.signers[0].StoredPublicKey()), ErrAlreadyExists)

	aggPK, err := p.AggregatePublicKeys(s.publicKeys())
	require.NoError(err)
	aggSig, err := p.AggregateSignatures(s.sign(t, validMessage))
	require.NoError(err)
	require.NoError(p.VerifyStateless(aggPK, aggSig, validMessage))
	require.Error(p.VerifyStateful(s.ids, aggSig, tamperedMessage))

	service := p.(*Service[*bn254.PublicKey, *bn254.Signature])
	m := service.metrics
	require.InDelta(2, testutil.ToFloat64(m.registrations.WithLabelValues(createdResult)), 0)
	require.InDelta(1, testutil.ToFloat64(m.registrations.WithLabelValues(existsResult)), 0)
	require.InDelta(1, testutil.ToFloat64(m.verifications.WithLabelValues(statelessMode, validResult)), 0)
	require.InDelta(1, testutil.ToFloat64(m.verifications.WithLabelValues(statefulMode, invalidResult)), 0)
	require.Equal(1, testutil.CollectAndCount(m.aggregationSize))
}
