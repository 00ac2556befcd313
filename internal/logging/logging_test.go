package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestBuildLevels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := Build(Config{Level: tt.level, Output: "discard"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := logger.Core().Enabled(zap.DebugLevel); got != tt.debugOn {
				t.Errorf("debug enabled: expected %v, got %v", tt.debugOn, got)
			}
			if got := logger.Core().Enabled(zap.WarnLevel); got != tt.warnOn {
				t.Errorf("warn enabled: expected %v, got %v", tt.warnOn, got)
			}
		})
	}
}

func TestBuildFileSinkJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimator.log")
	logger, err := Build(Config{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Named("engine").Info("estimate computed", zap.Int64("total_effort", 52))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"msg":"estimate computed"`, `"logger":"engine"`, `"total_effort":52`, `"timestamp"`} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %s in %s", want, line)
		}
	}
}

func TestBuildBadPath(t *testing.T) {
	_, err := Build(Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	if err == nil {
		t.Error("expected error for unwritable log path")
	}
}

func TestPrinterDoesNotExit(t *testing.T) {
	if err := Initialize(Config{Level: "debug", Output: "discard"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer InitializeDefault()

	p := NewPrinter("goose")
	p.Printf("OK   %s\n", "00001_create_estimates.sql")
	p.Fatalf("failed: %v\n", "boom")
}
