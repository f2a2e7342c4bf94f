package store

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/zalando/go-keyring"
)

// PreferencesBackend keeps values in the Fyne application preferences.
// Empty strings are treated as absent since preferences cannot tell them apart.
type PreferencesBackend struct {
	Prefs fyne.Preferences
}

func (b PreferencesBackend) Read(key string) (string, bool, error) {
	v := b.Prefs.String(key)
	return v, v != "", nil
}

func (b PreferencesBackend) Write(key, value string) error {
	if value == "" {
		b.Prefs.RemoveValue(key)
		return nil
	}
	b.Prefs.SetString(key, value)
	return nil
}

func (b PreferencesBackend) Delete(key string) error {
	b.Prefs.RemoveValue(key)
	return nil
}

// KeyringBackend keeps values in the OS secret store (Keychain, Secret
// Service, Credential Manager) under one service name.
type KeyringBackend struct {
	Service string
}

func (b KeyringBackend) Read(key string) (string, bool, error) {
	v, err := keyring.Get(b.Service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (b KeyringBackend) Write(key, value string) error {
	return keyring.Set(b.Service, key, value)
}

func (b KeyringBackend) Delete(key string) error {
	err := keyring.Delete(b.Service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// NewBackend maps a backend name from the preferences to its implementation.
func NewBackend(name string, prefs fyne.Preferences) (Backend, error) {
	switch name {
	case "", config.StoreBackendPreferences:
		return PreferencesBackend{Prefs: prefs}, nil
	case config.StoreBackendKeyring:
		return KeyringBackend{Service: config.KeyringService}, nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownBackend, name)
	}
}
