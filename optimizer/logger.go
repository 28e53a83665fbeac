package optimizer

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var defaultLogger atomic.Pointer[zap.Logger]

// Logger returns the logger that New hands to optimizers built without
// Config.Logger. It is a no-op logger until SetLogger is called.
func Logger() *zap.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the default logger for optimizers created afterwards.
// Optimizers that already exist keep the logger they were built with, and
// Config.Logger still wins for a single Optimizer. A nil logger restores the
// no-op default. The CLI installs its -v development logger here once at
// startup.
func SetLogger(l *zap.Logger) {
	defaultLogger.Store(l)
}
