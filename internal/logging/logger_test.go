package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewHonoursLevel(t *testing.T) {
	log, err := New("warn", false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn should be enabled")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New("chatty", true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) || log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected info level fallback")
	}
}
