// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log re-exports the structured logger used throughout the game
// server so call sites depend on this module rather than on
// github.com/luxfi/log directly.
package log

import (
	"github.com/luxfi/log"
)

// Logger is the structured key-value logger interface used across the
// module: Info/Debug/Warn/Error(msg string, keyvals ...any).
type Logger = log.Logger

// NewNoOpLogger returns a logger that discards everything, used by tests
// and by components run without a configured sink.
func NewNoOpLogger() Logger {
	return log.NewNoOpLogger()
}
