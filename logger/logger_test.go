package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[LogLevel]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		"INFO":     zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"bogus":    zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHelpersWriteToReplacedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	WithSession("abc")
	Info("track created", String("path", "joan_01-01-2024.csv"))
	Error("export failed", ErrorField(errors.New("disk full")))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0].ContextMap()
	if first["session"] != "abc" || first["path"] != "joan_01-01-2024.csv" {
		t.Fatalf("unexpected fields: %v", first)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", entries[1].Level)
	}
}

func TestHelpersWithoutLoggerDoNotPanic(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	Debug("ignored")
	Warn("ignored")
	Sync()
}
