package txcache

import "log"

// Logger receives diagnostics from best-effort code paths, such as the
// per-key unlock step during a transactional rollback.
type Logger interface {
	Warnf(format string, args ...any)
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(format string, args ...any)

// Warnf implements Logger.
func (f LoggerFunc) Warnf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

// NopLogger discards all diagnostics.
type NopLogger struct{}

// Warnf implements Logger.
func (NopLogger) Warnf(string, ...any) {}

type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...any) {
	log.Printf("WARN "+format, args...)
}

// DefaultLogger returns a Logger backed by the standard library log package.
func DefaultLogger() Logger { return stdLogger{} }
