package logger

import corelogger "github.com/kilianp07/energydash/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component. Output format and level
// follow the last Configure call and the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
