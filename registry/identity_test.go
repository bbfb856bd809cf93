// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestIdentityText(t *testing.T) {
	require := require.New(t)

	id := Identity{1, 2, 3}
	parsed, err := ParseIdentity(id.String())
	require.NoError(err)
	require.Equal(id, parsed)

	_, err = ParseIdentity("0OIl")
	require.Error(err)

	_, err = ParseIdentity("abc")
	require.ErrorIs(err, errWrongIdentityLen)
}

func TestIdentityYAML(t *testing.T) {
	require := require.New(t)

	ids := []Identity{{1}, {2}}
	b, err := yaml.Marshal(ids)
	require.NoError(err)

	var parsed []Identity
	require.NoError(yaml.Unmarshal(b, &parsed))
	require.Equal(ids, parsed)
}

func FuzzParseIdentity(f *testing.F) {
	f.Add(Identity{7}.String())
	f.Fuzz(func(t *testing.T, s string) {
		id, err := ParseIdentity(s)
		if err != nil {
			return
		}
		again, err := ParseIdentity(id.String())
		require.NoError(t, err)
		require.Equal(t, id, again)
	})
}
