package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/loan-calc/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		override  string
		level     zapcore.Level
		wantError bool
	}{
		{name: "Defaults", cfg: config.LoggingConfig{}, level: zapcore.InfoLevel},
		{name: "Console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}, level: zapcore.DebugLevel},
		{name: "Warning alias", cfg: config.LoggingConfig{Level: "warning"}, level: zapcore.WarnLevel},
		{name: "Override wins", cfg: config.LoggingConfig{Level: "debug"}, override: "error", level: zapcore.ErrorLevel},
		{name: "Invalid level", cfg: config.LoggingConfig{Level: "verbose"}, wantError: true},
		{name: "Invalid override", cfg: config.LoggingConfig{}, override: "loud", wantError: true},
		{name: "Invalid format", cfg: config.LoggingConfig{Format: "xml"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.level) {
				t.Errorf("expected level %s to be enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && logger.Core().Enabled(tt.level-1) {
				t.Errorf("expected level %s to be disabled", tt.level-1)
			}
		})
	}
}

func TestNewOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "loan-calc.log")

	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("expected log line in file, got %q", data)
	}
}
