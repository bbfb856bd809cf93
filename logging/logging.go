// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging provides the printf-style logger shared by the service, the
// storage backends and the command line tool.
package logging

import "fmt"

// Logger defines the logging interface used across the module
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Fatal(format string, args ...interface{})
}

var _ Logger = NoLog{}

// NoLog is a no-op logger implementation
type NoLog struct{}

func (NoLog) Debug(string, ...interface{}) {}
func (NoLog) Info(string, ...interface{})  {}
func (NoLog) Warn(string, ...interface{})  {}
func (NoLog) Error(string, ...interface{}) {}
func (NoLog) Fatal(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
