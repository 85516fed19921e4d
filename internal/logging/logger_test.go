package logging

import (
	"itemtracker/internal/config"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.log")
	logger := New(config.Log{Level: "debug", Format: "console", File: path})
	logger.Debug("board rendered")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "board rendered") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	logger := New(config.Log{Level: "loud"})
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at the fallback level")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled")
	}
}
