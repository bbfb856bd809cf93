// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// IdentityLen is the length of an Identity in bytes.
const IdentityLen = 32

var errWrongIdentityLen = errors.New("wrong identity length")

// Identity names one registered signer. Its text form is base58.
type Identity [IdentityLen]byte

// IdentityFromBytes copies [b] into an Identity.
func IdentityFromBytes(b []byte) (Identity, error) {
	var id Identity
	if len(b) != IdentityLen {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", errWrongIdentityLen, IdentityLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// ParseIdentity parses the base58 form returned by String.
func ParseIdentity(s string) (Identity, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Identity{}, fmt.Errorf("couldn't decode identity %q: %w", s, err)
	}
	return IdentityFromBytes(b)
}

func (id Identity) String() string {
	return base58.Encode(id[:])
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Compare orders identities by their bytes.
func (id Identity) Compare(other Identity) int {
	return bytes.Compare(id[:], other[:])
}
