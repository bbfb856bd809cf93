// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package set

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	require := require.New(t)

	s := Of(1, 2, 2, 3)
	require.Equal(3, s.Len())
	require.True(s.Contains(2))
	require.ElementsMatch([]int{1, 2, 3}, s.List())

	require.False(s.Insert(3))
	require.True(s.Insert(4))
	require.Equal(4, s.Len())

	s.Remove(1, 4, 5)
	require.ElementsMatch([]int{2, 3}, s.List())

	s.Clear()
	require.Zero(s.Len())
	require.False(s.Contains(2))
}
