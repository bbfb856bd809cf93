// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package aggregator folds group elements into a single aggregate.
package aggregator

import (
	"errors"
	"fmt"

	"github.com/luxfi/aggsig/curve"
)

var (
	// ErrEmptyAggregationSet is returned when asked to aggregate nothing.
	// There is no implicit identity element.
	ErrEmptyAggregationSet = errors.New("empty aggregation set")

	// ErrCompressionFailed is returned when an aggregate has no compressed
	// encoding.
	ErrCompressionFailed = errors.New("compression failed")
)

// Aggregate returns the sum of [elems] in [g]. The result does not depend on
// the order of [elems].
func Aggregate[E any](g curve.Group[E], elems []E) (E, error) {
	if len(elems) == 0 {
		var zero E
		return zero, ErrEmptyAggregationSet
	}

	result := elems[0]
	for _, e := range elems[1:] {
		result = g.Add(result, e)
	}
	return result, nil
}

// AggregateAndCompress returns the compressed encoding of the sum of [elems].
func AggregateAndCompress[E any](g curve.Group[E], elems []E) ([]byte, error) {
	result, err := Aggregate(g, elems)
	if err != nil {
		return nil, err
	}
	b, err := g.Compress(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompressionFailed, g.Name(), err)
	}
	return b, nil
}

// AggregateCompressed decompresses every input, sums them and returns the
// compressed aggregate. Any input that fails to decode aborts the whole call.
func AggregateCompressed[E any](g curve.Group[E], compressed [][]byte) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, ErrEmptyAggregationSet
	}

	elems := make([]E, len(compressed))
	for i, b := range compressed {
		e, err := g.Decompress(b)
		if err != nil {
			return nil, fmt.Errorf("couldn't decode %s element %d: %w", g.Name(), i, err)
		}
		elems[i] = e
	}
	return AggregateAndCompress(g, elems)
}
