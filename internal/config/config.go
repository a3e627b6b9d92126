// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/loan-calc/internal/storage"
	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/format"
	"github.com/iwvelando/loan-calc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-calc.
type Configuration struct {
	Logging LoggingConfig  `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig   `mapstructure:"output" yaml:"output,omitempty"`
	Storage storage.Config `mapstructure:"storage" yaml:"storage,omitempty"`
	Window  WindowConfig   `mapstructure:"window" yaml:"window,omitempty"`
	Format  FormatConfig   `mapstructure:"format" yaml:"format,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width       float32 `mapstructure:"width" yaml:"width,omitempty"`
	Height      float32 `mapstructure:"height" yaml:"height,omitempty"`
	SliderWidth float32 `mapstructure:"sliderWidth" yaml:"sliderWidth,omitempty"`
	Theme       string  `mapstructure:"theme" yaml:"theme,omitempty"` // light, dark
}

// FormatConfig configures number display.
type FormatConfig struct {
	Separator string `mapstructure:"separator" yaml:"separator,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Storage: storage.Config{
			Backend:    constants.StorageBackendFile,
			Path:       constants.DefaultStateFile,
			SQLitePath: constants.DefaultSQLiteFile,
			RedisAddr:  constants.DefaultRedisAddr,
		},
		Window: WindowConfig{
			Width:       constants.DefaultWindowWidth,
			Height:      constants.DefaultWindowHeight,
			SliderWidth: constants.DefaultSliderWidth,
			Theme:       constants.DefaultTheme,
		},
		Format: FormatConfig{Separator: constants.DefaultSeparator},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with LOANCALC_
// override file values, e.g. LOANCALC_STORAGE_BACKEND. A missing file is
// only tolerated for the default config path.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		_, err := os.Stat(configPath)
		switch {
		case err == nil:
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		case errors.Is(err, fs.ErrNotExist) && configPath == constants.DefaultConfigFile:
			// Run on defaults and environment overrides.
		default:
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &configuration, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper, def *Configuration) {
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.outputFile", def.Logging.OutputFile)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.sqlitePath", def.Storage.SQLitePath)
	v.SetDefault("storage.redisAddr", def.Storage.RedisAddr)
	v.SetDefault("storage.redisPassword", def.Storage.RedisPassword)
	v.SetDefault("storage.redisDB", def.Storage.RedisDB)
	v.SetDefault("storage.redisPrefix", def.Storage.RedisPrefix)
	v.SetDefault("window.width", def.Window.Width)
	v.SetDefault("window.height", def.Window.Height)
	v.SetDefault("window.sliderWidth", def.Window.SliderWidth)
	v.SetDefault("window.theme", def.Window.Theme)
	v.SetDefault("format.separator", def.Format.Separator)
}

// Validate checks the configuration for values that would stop the
// application from starting.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := validation.ValidateStorageBackend(c.Storage.Backend); err != nil {
		return err
	}
	if _, err := c.Formatter(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 || c.Window.SliderWidth <= 0 {
		return fmt.Errorf("window dimensions must be positive, got %vx%v with slider width %v",
			c.Window.Width, c.Window.Height, c.Window.SliderWidth)
	}
	if c.Window.Theme != "light" && c.Window.Theme != "dark" {
		return fmt.Errorf("expected window theme of light or dark, got %q", c.Window.Theme)
	}
	return nil
}

// Formatter builds the number formatter described by the format section.
func (c *Configuration) Formatter() (*format.Formatter, error) {
	f, err := format.NewFormatter(format.Options{Separator: c.Format.Separator})
	if err != nil {
		return nil, fmt.Errorf("invalid format configuration: %w", err)
	}
	return f, nil
}
