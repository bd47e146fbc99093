package resolver

import (
	"go.uber.org/zap"

	"github.com/wippyai/template-resolver/internal/logging"
)

var logger logging.Logger

// Logger returns the resolver's logger. It is a no-op logger until SetLogger is called.
func Logger() *zap.Logger { return logger.Get() }

// SetLogger replaces the resolver's logger. nil restores the no-op logger.
func SetLogger(l *zap.Logger) { logger.Set(l) }
