package builtins

import (
	"go.uber.org/zap"

	"github.com/wippyai/template-resolver/internal/logging"
)

var logger logging.Logger

// Logger returns the logger used by the log helper. It is a no-op logger
// until SetLogger is called.
func Logger() *zap.Logger { return logger.Get() }

// SetLogger replaces the log helper's logger.
func SetLogger(l *zap.Logger) { logger.Set(l) }
