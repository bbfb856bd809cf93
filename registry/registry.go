// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry stores one public key per signer identity. Records are
// created once and never change.
package registry

import (
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/luxfi/aggsig/aggregator"
	"github.com/luxfi/aggsig/cache"
	"github.com/luxfi/aggsig/curve"
	"github.com/luxfi/aggsig/database"
)

var (
	// ErrInvalidRecord is returned for a record that is missing or does not
	// hold a valid public key.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnknownIdentity is returned when no record exists for an identity.
	ErrUnknownIdentity = fmt.Errorf("%w: unknown identity", ErrInvalidRecord)

	prefix = []byte("signer/")
)

// Registry maps identities to public keys in [K]'s group.
type Registry[K any] struct {
	keys  curve.KeyGroup[K]
	db    database.Database
	cache cache.Cacher[Identity, K]

	// decodes collapses concurrent loads of the same record.
	decodes singleflight.Group
}

// New returns a registry persisting records in [db]. Decoded keys are kept in
// [c].
func New[K any](
	keys curve.KeyGroup[K],
	db database.Database,
	c cache.Cacher[Identity, K],
) *Registry[K] {
	return &Registry[K]{
		keys:  keys,
		db:    db,
		cache: c,
	}
}

// Key returns the storage key of [id]'s record.
func Key(id Identity) []byte {
	return database.PrefixKey(prefix, id[:])
}

// Create stores [publicKey], the uncompressed encoding of a key, for [id].
// Nothing is written unless the key is valid. A second Create for the same
// identity returns database.ErrAlreadyExists.
func (r *Registry[K]) Create(id Identity, publicKey []byte) error {
	key, err := r.decode(publicKey)
	if err != nil {
		return err
	}
	if r.keys.IsIdentity(key) {
		return fmt.Errorf("%w: public key is the identity element", ErrInvalidRecord)
	}

	if err := r.db.Create(Key(id), r.keys.Uncompressed(key)); err != nil {
		return fmt.Errorf("couldn't create record for %s: %w", id, err)
	}
	r.cache.Put(id, key)
	return nil
}

// Get returns the public key registered for [id].
func (r *Registry[K]) Get(id Identity) (K, error) {
	if key, ok := r.cache.Get(id); ok {
		return key, nil
	}

	v, err, _ := r.decodes.Do(string(id[:]), func() (interface{}, error) {
		return r.load(id)
	})
	if err != nil {
		var zero K
		return zero, err
	}
	return v.(K), nil
}

func (r *Registry[K]) load(id Identity) (K, error) {
	var zero K
	b, err := r.db.Get(Key(id))
	switch {
	case errors.Is(err, database.ErrNotFound):
		return zero, fmt.Errorf("%w: %s", ErrUnknownIdentity, id)
	case err != nil:
		return zero, fmt.Errorf("couldn't read record for %s: %w", id, err)
	}

	key, err := r.decode(b)
	if err != nil {
		return zero, fmt.Errorf("record for %s: %w", id, err)
	}
	r.cache.Put(id, key)
	return key, nil
}

func (r *Registry[K]) decode(b []byte) (K, error) {
	var zero K
	if expected := r.keys.UncompressedLen(); len(b) != expected {
		return zero, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidRecord, expected, len(b))
	}
	key, err := r.keys.FromUncompressed(b)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return key, nil
}

// ReadMany returns the public keys of [ids] in order. Any failure aborts the
// whole read.
func (r *Registry[K]) ReadMany(ids []Identity) ([]K, error) {
	keys := make([]K, len(ids))
	for i, id := range ids {
		key, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}

// AggregateRegistered returns the sum of the public keys of [ids].
func (r *Registry[K]) AggregateRegistered(ids []Identity) (K, error) {
	if len(ids) == 0 {
		var zero K
		return zero, aggregator.ErrEmptyAggregationSet
	}
	keys, err := r.ReadMany(ids)
	if err != nil {
		var zero K
		return zero, err
	}
	return aggregator.Aggregate[K](r.keys, keys)
}

// Has reports whether [id] is registered.
func (r *Registry[K]) Has(id Identity) (bool, error) {
	if _, ok := r.cache.Get(id); ok {
		return true, nil
	}
	return r.db.Has(Key(id))
}

// Identities returns every registered identity in ascending byte order.
func (r *Registry[K]) Identities() ([]Identity, error) {
	keys, err := database.Keys(r.db, prefix)
	if err != nil {
		return nil, err
	}
	ids := make([]Identity, len(keys))
	for i, k := range keys {
		id, err := IdentityFromBytes(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// Len returns the number of registered identities.
func (r *Registry[K]) Len() (int, error) {
	return database.Count(r.db, prefix)
}
