// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metercacher

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/aggsig/cache/lru"
)

func TestHitMissCounts(t *testing.T) {
	require := require.New(t)

	inner, err := lru.New[int, string](4)
	require.NoError(err)
	c, err := New[int, string]("keys", prometheus.NewRegistry(), inner)
	require.NoError(err)

	_, ok := c.Get(1)
	require.False(ok)

	c.Put(1, "one")
	v, ok := c.Get(1)
	require.True(ok)
	require.Equal("one", v)

	require.Equal(float64(1), testutil.ToFloat64(c.metrics.getCount.With(hitLabels)))
	require.Equal(float64(1), testutil.ToFloat64(c.metrics.getCount.With(missLabels)))
	require.Equal(float64(1), testutil.ToFloat64(c.metrics.putCount))
	require.Equal(float64(1), testutil.ToFloat64(c.metrics.len))
	require.InDelta(0.25, testutil.ToFloat64(c.metrics.portionFilled), 0)
}

func TestDuplicateNamespace(t *testing.T) {
	require := require.New(t)

	reg := prometheus.NewRegistry()
	inner, err := lru.New[int, string](1)
	require.NoError(err)

	_, err = New[int, string]("keys", reg, inner)
	require.NoError(err)
	_, err = New[int, string]("keys", reg, inner)
	require.Error(err)
}
