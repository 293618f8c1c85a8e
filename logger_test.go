package txcache

import (
	"fmt"
	"testing"
)

func TestLoggerFunc(t *testing.T) {
	var got string
	logger := LoggerFunc(func(format string, args ...any) {
		got = fmt.Sprintf(format, args...)
	})
	logger.Warnf("key %q failed", "a")
	if got != `key "a" failed` {
		t.Fatalf("unexpected message %q", got)
	}

	var nilLogger LoggerFunc
	nilLogger.Warnf("must not panic")
}

func TestNopLogger(t *testing.T) {
	NopLogger{}.Warnf("discarded %d", 1)
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	if DefaultLogger() == nil {
		t.Fatalf("expected a default logger")
	}
}
