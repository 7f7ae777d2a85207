// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs a logger for the package. Call it before starting any
// server; the receive loop reads it without locking.
func SetLogger(l *zap.Logger) {
	logger = l
}
