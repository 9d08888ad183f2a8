package types

// Logger defines structured logging with key-value pairs.
//
// The interface is shaped after zap's sugared logger so that production
// applications can satisfy it with a thin wrapper, while tests and default
// configurations use the no-op implementation from internal/logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}
