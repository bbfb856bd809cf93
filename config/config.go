// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the service configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/luxfi/aggsig/crypto/bls12381"
	"github.com/luxfi/aggsig/crypto/bn254"
	"github.com/luxfi/aggsig/database/factory"
	"github.com/luxfi/aggsig/logging"
)

const (
	DefaultMaxSigners = 256
	DefaultCacheSize  = 1024
	DefaultNamespace  = "aggsig"
)

var (
	// Schemes lists every supported signature scheme.
	Schemes = []string{
		bn254.Name,
		bls12381.Name,
	}

	ErrUnknownScheme = errors.New("unknown signature scheme")

	errNonPositiveMaxSigners = errors.New("maxSigners must be positive")
	errNonPositiveCacheSize  = errors.New("cache size must be positive")
)

type CacheConfig struct {
	// Size is the number of decoded public keys kept in memory.
	Size int `yaml:"size"`
}

type Config struct {
	// Scheme is one of Schemes.
	Scheme string `yaml:"scheme"`
	// MaxSigners bounds the identities named by one stateful verification.
	MaxSigners int `yaml:"maxSigners"`
	// Namespace prefixes every exported metric.
	Namespace string `yaml:"namespace"`

	Database factory.Config `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      logging.Config `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of the config with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Scheme == "" {
		c.Scheme = bn254.Name
	}
	if c.MaxSigners == 0 {
		c.MaxSigners = DefaultMaxSigners
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = DefaultCacheSize
	}
	c.Database = c.Database.WithDefaults()
	c.Log = c.Log.WithDefaults()
	return c
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case !slices.Contains(Schemes, c.Scheme):
		return fmt.Errorf("%w: %q", ErrUnknownScheme, c.Scheme)
	case c.MaxSigners <= 0:
		return fmt.Errorf("%w: %d", errNonPositiveMaxSigners, c.MaxSigners)
	case c.Cache.Size <= 0:
		return fmt.Errorf("%w: %d", errNonPositiveCacheSize, c.Cache.Size)
	}
	return c.Database.Validate()
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(b []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	// An empty document leaves every field unset.
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, pkgerrors.Wrap(err, "couldn't parse config")
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, pkgerrors.Wrap(err, "invalid config")
	}
	return c, nil
}

// Load reads and parses the YAML file at [path].
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, pkgerrors.Wrapf(err, "couldn't read config %q", path)
	}
	return Parse(b)
}
