// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Package factory opens the database backend named by a Config.
package factory

import (
	"errors"
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/aggsig/database"
	"github.com/luxfi/aggsig/database/badgerdb"
	"github.com/luxfi/aggsig/database/leveldb"
	"github.com/luxfi/aggsig/database/memdb"
	"github.com/luxfi/aggsig/database/meterdb"
	"github.com/luxfi/aggsig/database/pebbledb"
	"github.com/luxfi/aggsig/logging"
)

const defaultNamespace = "db"

var (
	// Types lists every backend New can open.
	Types = []string{
		memdb.Name,
		leveldb.Name,
		pebbledb.Name,
		badgerdb.Name,
	}

	ErrUnknownType  = errors.New("unknown database type")
	errPathRequired = errors.New("database path required")
)

// Config contains all the parameters necessary to create a database
type Config struct {
	// Type is one of Types.
	Type string `yaml:"type"`
	// Path is the directory of a persistent backend. Unused by memdb.
	Path string `yaml:"path"`

	CacheSize       int `yaml:"cacheSize"`
	WriteBufferSize int `yaml:"writeBufferSize"`
	HandleCap       int `yaml:"handleCap"`

	Badger badgerdb.Config `yaml:"badger"`

	// Metrics wraps the backend in a meterdb when a registerer is provided.
	Metrics   bool   `yaml:"metrics"`
	Namespace string `yaml:"namespace"`
}

// WithDefaults returns a copy of the config with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Type == "" {
		c.Type = memdb.Name
	}
	if c.Namespace == "" {
		c.Namespace = defaultNamespace
	}
	return c
}

// Validate reports whether New could open the configured backend.
func (c Config) Validate() error {
	if !slices.Contains(Types, c.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
	}
	if c.Type != memdb.Name && c.Path == "" {
		return fmt.Errorf("%w for %s", errPathRequired, c.Type)
	}
	return nil
}

// New creates a new database based on the config
func New(
	config Config,
	log logging.Logger,
	reg prometheus.Registerer,
) (database.Database, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := newBackend(config, log, reg)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s at %q: %w", config.Type, config.Path, err)
	}
	log.Info("opened %s database at %q", config.Type, config.Path)

	if !config.Metrics || reg == nil {
		return db, nil
	}
	meterDB, err := meterdb.New(config.Namespace, reg, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("couldn't register database metrics: %w", err)
	}
	return meterDB, nil
}

func newBackend(
	config Config,
	log logging.Logger,
	reg prometheus.Registerer,
) (database.Database, error) {
	switch config.Type {
	case leveldb.Name:
		var statsReg prometheus.Registerer
		if config.Metrics {
			statsReg = reg
		}
		return leveldb.New(
			config.Path,
			config.CacheSize,
			config.WriteBufferSize,
			config.HandleCap,
			config.Namespace+"_leveldb",
			statsReg,
		)
	case pebbledb.Name:
		return pebbledb.New(config.Path, config.CacheSize, config.HandleCap)
	case badgerdb.Name:
		return badgerdb.New(config.Path, config.Badger, log)
	default:
		return memdb.New(), nil
	}
}
