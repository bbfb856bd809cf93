// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package aggsig

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/aggsig/aggregator"
	"github.com/luxfi/aggsig/cache"
	"github.com/luxfi/aggsig/cache/lru"
	"github.com/luxfi/aggsig/cache/metercacher"
	"github.com/luxfi/aggsig/config"
	"github.com/luxfi/aggsig/curve"
	"github.com/luxfi/aggsig/database"
	"github.com/luxfi/aggsig/logging"
	"github.com/luxfi/aggsig/registry"
	"github.com/luxfi/aggsig/utils/set"
	"github.com/luxfi/aggsig/verifier"
)

// Service implements Protocol for the scheme [K, S].
type Service[K, S any] struct {
	scheme     curve.Scheme[K, S]
	registry   *registry.Registry[K]
	verifier   *verifier.Verifier[K, S]
	maxSigners int

	log     logging.Logger
	metrics *metrics
}

// New returns a Service for [scheme]. Metrics are registered with [reg] when
// it is non-nil.
func New[K, S any](
	scheme curve.Scheme[K, S],
	cfg config.Config,
	db database.Database,
	log logging.Logger,
	reg prometheus.Registerer,
) (*Service[K, S], error) {
	cfg = cfg.WithDefaults()
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	lruCache, err := lru.New[registry.Identity, K](cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("couldn't create key cache: %w", err)
	}
	var keyCache cache.Cacher[registry.Identity, K] = lruCache
	keyCache, err = metercacher.New(cfg.Namespace+"_key_cache", reg, keyCache)
	if err != nil {
		return nil, fmt.Errorf("couldn't register key cache metrics: %w", err)
	}

	m, err := newMetrics(cfg.Namespace, reg)
	if err != nil {
		return nil, fmt.Errorf("couldn't register metrics: %w", err)
	}

	return &Service[K, S]{
		scheme:     scheme,
		registry:   registry.New(scheme.Keys(), db, keyCache),
		verifier:   verifier.New(scheme),
		maxSigners: cfg.MaxSigners,
		log:        log,
		metrics:    m,
	}, nil
}

func (s *Service[K, S]) Register(id registry.Identity, publicKey []byte) error {
	err := s.registry.Create(id, publicKey)
	s.metrics.observeRegistration(err)
	switch {
	case err == nil:
		s.log.Info("registered signer %s", id)
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrInvalidRecord):
		s.log.Debug("rejected registration of %s: %s", id, err)
	default:
		s.log.Error("failed to register signer %s: %s", id, err)
	}
	return err
}

func (s *Service[K, S]) VerifyStateless(publicKey, signature, message []byte) error {
	err := s.verifier.VerifyCompressed(publicKey, signature, message)
	s.metrics.observeVerification(statelessMode, err)
	if err != nil {
		s.log.Debug("stateless verification failed: %s", err)
	}
	return err
}

func (s *Service[K, S]) VerifyStateful(ids []registry.Identity, signature, message []byte) error {
	err := s.verifyStateful(ids, signature, message)
	s.metrics.observeVerification(statefulMode, err)
	switch {
	case err == nil:
	case errors.Is(err, ErrSignatureInvalid),
		errors.Is(err, ErrDecompressionFailed),
		errors.Is(err, ErrInvalidRecord),
		errors.Is(err, ErrEmptyAggregationSet),
		errors.Is(err, ErrTooManySigners),
		errors.Is(err, ErrDuplicateIdentity):
		s.log.Debug("stateful verification of %d signers failed: %s", len(ids), err)
	default:
		s.log.Error("stateful verification of %d signers errored: %s", len(ids), err)
	}
	return err
}

func (s *Service[K, S]) verifyStateful(ids []registry.Identity, signature, message []byte) error {
	if len(ids) == 0 {
		return ErrEmptyAggregationSet
	}
	if len(ids) > s.maxSigners {
		return fmt.Errorf("%w: %d > %d", ErrTooManySigners, len(ids), s.maxSigners)
	}
	seen := set.NewSet[registry.Identity](len(ids))
	for _, id := range ids {
		if !seen.Insert(id) {
			return fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
		}
	}
	s.metrics.aggregationSize.Observe(float64(len(ids)))

	key, err := s.registry.AggregateRegistered(ids)
	if err != nil {
		return err
	}
	return s.verifier.Verify(key, signature, message)
}

func (s *Service[K, S]) AggregatePublicKeys(publicKeys [][]byte) ([]byte, error) {
	return aggregator.AggregateCompressed[K](s.scheme.Keys(), publicKeys)
}

func (s *Service[K, S]) AggregateSignatures(signatures [][]byte) ([]byte, error) {
	return aggregator.AggregateCompressed[S](s.scheme.Signatures(), signatures)
}

func (s *Service[K, S]) Signers() ([]registry.Identity, error) {
	return s.registry.Identities()
}

func (s *Service[K, S]) Scheme() string {
	return s.scheme.Name()
}

func (s *Service[K, S]) Sizes() Sizes {
	return Sizes{
		Signature:       s.scheme.Signatures().CompressedLen(),
		PublicKey:       s.scheme.Keys().CompressedLen(),
		StoredPublicKey: s.scheme.Keys().UncompressedLen(),
	}
}
