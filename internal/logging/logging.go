// Package logging holds the replaceable zap logger behind each package's
// Logger and SetLogger functions.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var nop = zap.NewNop()

// Logger is a package-level logger slot. The zero value logs nothing.
type Logger struct {
	p atomic.Pointer[zap.Logger]
}

// Get returns the configured logger, or a no-op logger when none is set.
func (l *Logger) Get() *zap.Logger {
	if z := l.p.Load(); z != nil {
		return z
	}
	return nop
}

// Set replaces the logger. Passing nil restores the no-op logger.
func (l *Logger) Set(z *zap.Logger) {
	l.p.Store(z)
}
