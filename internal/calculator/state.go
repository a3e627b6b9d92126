package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iwvelando/loan-calc/internal/storage"
	"go.uber.org/zap"
)

// Load restores inputs stored under key. A missing, unreadable or malformed
// record falls back to DefaultInputs; fields absent from the record keep
// their defaults. Load never fails so a bad state file cannot block startup.
func Load(ctx context.Context, store storage.Store, key string, logger *zap.Logger) Inputs {
	if logger == nil {
		logger = zap.NewNop()
	}

	if store == nil {
		return DefaultInputs()
	}

	data, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Debug("no saved state, using defaults",
			zap.String("op", "calculator.Load"),
			zap.String("key", key),
		)
		return DefaultInputs()
	}
	if err != nil {
		logger.Warn("failed to read saved state, using defaults",
			zap.String("op", "calculator.Load"),
			zap.String("key", key),
			zap.Error(err),
		)
		return DefaultInputs()
	}

	in, err := Decode(data)
	if err != nil {
		logger.Warn("failed to decode saved state, using defaults",
			zap.String("op", "calculator.Load"),
			zap.String("key", key),
			zap.Error(err),
		)
		return DefaultInputs()
	}
	return in
}

// Save stores the inputs under key.
func Save(ctx context.Context, store storage.Store, key string, in Inputs) error {
	data, err := Encode(in)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save state under %q: %w", key, err)
	}
	return nil
}

// Encode serializes inputs as a JSON record.
func Encode(in Inputs) ([]byte, error) {
	data, err := json.Marshal(in.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode parses a JSON record onto the defaults and normalizes the result.
func Decode(data []byte) (Inputs, error) {
	in := DefaultInputs()
	if err := json.Unmarshal(data, &in); err != nil {
		return DefaultInputs(), fmt.Errorf("failed to decode state: %w", err)
	}
	return in.Normalize(), nil
}
