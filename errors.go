// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package aggsig

import (
	"errors"

	"github.com/luxfi/aggsig/aggregator"
	"github.com/luxfi/aggsig/config"
	"github.com/luxfi/aggsig/curve"
	"github.com/luxfi/aggsig/database"
	"github.com/luxfi/aggsig/registry"
	"github.com/luxfi/aggsig/verifier"
)

// Every error returned by a Protocol matches one of these with errors.Is, or
// wraps a storage failure.
var (
	ErrEmptyAggregationSet = aggregator.ErrEmptyAggregationSet
	ErrCompressionFailed   = aggregator.ErrCompressionFailed
	ErrDecompressionFailed = curve.ErrDecompressionFailed
	ErrInvalidRecord       = registry.ErrInvalidRecord
	ErrUnknownIdentity     = registry.ErrUnknownIdentity
	ErrAlreadyExists       = database.ErrAlreadyExists
	ErrSignatureInvalid    = verifier.ErrSignatureInvalid
	ErrUnknownScheme       = config.ErrUnknownScheme

	ErrTooManySigners    = errors.New("too many signers")
	ErrDuplicateIdentity = errors.New("duplicate identity")
)
