// Package-level structured logging configuration.
//
// Logging is an infrastructure cross-cutting concern; signals share logging
// semantics, so a process-wide default avoids per-instance configuration
// surface, while [WithLogger] still allows per-signal overrides. The logiface
// facade is nil-safe: with no logger configured, every log site costs a nil
// check and nothing else.

package sigslot

import (
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

var globalLogger atomic.Pointer[logiface.Logger[logiface.Event]]

// SetLogger sets the process-wide default logger, used by signals that were
// not given one via [WithLogger]. Pass nil to disable.
//
// Typed logiface loggers convert via their Logger method:
//
//	l := logiface.New[*myEvent](...)
//	sigslot.SetLogger(l.Logger())
func SetLogger(logger *logiface.Logger[logiface.Event]) {
	globalLogger.Store(logger)
}

// defaultLogger returns the process-wide default logger, which may be nil
// (logiface treats a nil logger as disabled).
func defaultLogger() *logiface.Logger[logiface.Event] {
	return globalLogger.Load()
}
