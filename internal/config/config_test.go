package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/format"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Missing default config file",
			configPath: constants.DefaultConfigFile,
			wantError:  false,
		},
		{
			name:       "No config file",
			configPath: "",
			wantError:  false,
		},
		{
			name:       "Example config",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if *config != *Default() {
		t.Errorf("LoadConfiguration(\"\") = %+v, expected %+v", *config, *Default())
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected Logging.Level = debug, got %q", config.Logging.Level)
	}
	if config.Logging.Format != "console" {
		t.Errorf("Expected Logging.Format = console, got %q", config.Logging.Format)
	}
	if config.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Expected Output.Format = csv, got %q", config.Output.Format)
	}
	if config.Storage.Backend != constants.StorageBackendSQLite {
		t.Errorf("Expected Storage.Backend = sqlite, got %q", config.Storage.Backend)
	}
	if config.Storage.SQLitePath != "data/loan-calc.db" {
		t.Errorf("Expected Storage.SQLitePath = data/loan-calc.db, got %q", config.Storage.SQLitePath)
	}
	// Keys absent from the file keep their defaults.
	if config.Storage.Path != constants.DefaultStateFile {
		t.Errorf("Expected Storage.Path = %s, got %q", constants.DefaultStateFile, config.Storage.Path)
	}
	if config.Window.Width != 640 || config.Window.Height != 480 || config.Window.SliderWidth != 360 {
		t.Errorf("Unexpected window config %+v", config.Window)
	}
	if config.Window.Theme != "dark" {
		t.Errorf("Expected Window.Theme = dark, got %q", config.Window.Theme)
	}
	if config.Format.Separator != "." {
		t.Errorf("Expected Format.Separator = \".\", got %q", config.Format.Separator)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("LOANCALC_STORAGE_BACKEND", "memory")
	t.Setenv("LOANCALC_OUTPUT_FORMAT", "csv")

	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Storage.Backend != constants.StorageBackendMemory {
		t.Errorf("Expected env override Storage.Backend = memory, got %q", config.Storage.Backend)
	}
	if config.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Expected Output.Format = csv, got %q", config.Output.Format)
	}
}

func TestLoadConfigurationMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [backend"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfiguration(path); err == nil {
		t.Error("LoadConfiguration() expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Configuration)
		wantError bool
	}{
		{name: "Defaults", modify: func(c *Configuration) {}},
		{name: "CSV output", modify: func(c *Configuration) { c.Output.Format = constants.OutputFormatCSV }},
		{name: "Redis storage", modify: func(c *Configuration) { c.Storage.Backend = constants.StorageBackendRedis }},
		{name: "Preferences storage", modify: func(c *Configuration) { c.Storage.Backend = constants.StorageBackendPreferences }},
		{name: "Unknown output", modify: func(c *Configuration) { c.Output.Format = "xml" }, wantError: true},
		{name: "Unknown storage", modify: func(c *Configuration) { c.Storage.Backend = "etcd" }, wantError: true},
		{name: "Digit separator", modify: func(c *Configuration) { c.Format.Separator = "1" }, wantError: true},
		{name: "Empty separator", modify: func(c *Configuration) { c.Format.Separator = "" }, wantError: true},
		{name: "Zero width", modify: func(c *Configuration) { c.Window.Width = 0 }, wantError: true},
		{name: "Negative slider width", modify: func(c *Configuration) { c.Window.SliderWidth = -1 }, wantError: true},
		{name: "Unknown theme", modify: func(c *Configuration) { c.Window.Theme = "blue" }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(config)

			err := config.Validate()
			if tt.wantError && err == nil {
				t.Error("Validate() expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestFormatter(t *testing.T) {
	config := Default()
	config.Format.Separator = ","

	f, err := config.Formatter()
	if err != nil {
		t.Fatalf("Formatter() error = %v", err)
	}
	if got := f.Integer(1234567); got != "1,234,567" {
		t.Errorf("Integer(1234567) = %q, expected %q", got, "1,234,567")
	}

	config.Format.Separator = "--"
	if _, err := config.Formatter(); !errors.Is(err, format.ErrInvalidSeparator) {
		t.Errorf("Formatter() error = %v, expected ErrInvalidSeparator", err)
	}
}
