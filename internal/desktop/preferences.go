package desktop

import (
	"context"

	"fyne.io/fyne/v2"
	"github.com/iwvelando/loan-calc/internal/storage"
)

// PreferencesStore adapts the fyne application preferences to
// storage.Store. Values are kept as strings, so an empty value reads back
// as missing.
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore wraps prefs, typically App.Preferences().
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Get returns the value stored under key.
func (p *PreferencesStore) Get(_ context.Context, key string) ([]byte, error) {
	value := p.prefs.String(key)
	if value == "" {
		return nil, storage.ErrNotFound
	}
	return []byte(value), nil
}

// Set stores value under key.
func (p *PreferencesStore) Set(_ context.Context, key string, value []byte) error {
	p.prefs.SetString(key, string(value))
	return nil
}

// Close is a no-op; fyne persists preferences itself.
func (p *PreferencesStore) Close() error {
	return nil
}
