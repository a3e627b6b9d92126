// Package storage persists small values under string keys.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwvelando/loan-calc/pkg/constants"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a key-value store for opaque values. Implementations are safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Config selects and configures a storage backend.
type Config struct {
	Backend       string `mapstructure:"backend" yaml:"backend"`
	Path          string `mapstructure:"path" yaml:"path"`
	SQLitePath    string `mapstructure:"sqlitePath" yaml:"sqlitePath"`
	RedisAddr     string `mapstructure:"redisAddr" yaml:"redisAddr"`
	RedisPassword string `mapstructure:"redisPassword" yaml:"redisPassword"`
	RedisDB       int    `mapstructure:"redisDB" yaml:"redisDB"`
	RedisPrefix   string `mapstructure:"redisPrefix" yaml:"redisPrefix"`
}

// Open creates the Store described by cfg. The preferences backend belongs
// to the desktop front end and cannot be opened here.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case constants.StorageBackendMemory:
		logger.Debug("using in-memory storage",
			zap.String("op", "storage.Open"),
		)
		return NewMemoryStore(), nil
	case constants.StorageBackendFile:
		path := cfg.Path
		if path == "" {
			path = constants.DefaultStateFile
		}
		logger.Debug("using file storage",
			zap.String("op", "storage.Open"),
			zap.String("path", path),
		)
		return NewFileStore(path), nil
	case constants.StorageBackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = constants.DefaultSQLiteFile
		}
		store, err := NewSQLiteStore(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite storage: %w", err)
		}
		logger.Debug("using SQLite storage",
			zap.String("op", "storage.Open"),
			zap.String("path", path),
		)
		return store, nil
	case constants.StorageBackendRedis:
		addr := cfg.RedisAddr
		if addr == "" {
			addr = constants.DefaultRedisAddr
		}
		store, err := NewRedisStore(ctx, RedisOptions{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis storage: %w", err)
		}
		logger.Debug("using Redis storage",
			zap.String("op", "storage.Open"),
			zap.String("addr", addr),
		)
		return store, nil
	case constants.StorageBackendPreferences:
		return nil, fmt.Errorf("storage backend %q is only available in the desktop application", cfg.Backend)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.Backend)
	}
}
