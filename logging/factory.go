// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSize    = 50 // megabytes per file before rotation
	defaultMaxBackups = 5
	defaultMaxAge     = 14 // days
)

// Config selects where logs go and how the file output rotates.
type Config struct {
	// Debug enables debug entries and the development encoder.
	Debug bool `yaml:"debug"`
	// Path is the log file. Logs go to stderr when it is empty.
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

// WithDefaults fills unset rotation limits.
func (c Config) WithDefaults() Config {
	if c.MaxSize == 0 {
		c.MaxSize = defaultMaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = defaultMaxBackups
	}
	if c.MaxAge == 0 {
		c.MaxAge = defaultMaxAge
	}
	return c
}

// New builds a zap logger from [cfg]. The returned closer releases the log
// file, if any.
func New(cfg Config) (*zap.Logger, io.Closer, error) {
	if cfg.Path == "" {
		var (
			logger *zap.Logger
			err    error
		)
		if cfg.Debug {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return logger, io.NopCloser(nil), err
	}
	return NewRotatingFileLogger(cfg)
}

// NewRotatingFileLogger writes console-encoded entries to a size-rotated file.
func NewRotatingFileLogger(cfg Config) (*zap.Logger, io.Closer, error) {
	cfg = cfg.WithDefaults()
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, err
	}

	rot := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encCfg := zap.NewProductionEncoderConfig()
	level := zap.InfoLevel
	if cfg.Debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zap.DebugLevel
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	enc := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewCore(enc, zapcore.AddSync(rot), level)
	return zap.New(core, zap.AddCaller()), rot, nil
}
