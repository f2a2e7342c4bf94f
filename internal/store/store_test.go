package store_test

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
	"github.com/tartampluch/life-grid/internal/store"
	"github.com/zalando/go-keyring"
)

// memoryBackend records raw keys so namespacing can be asserted.
type memoryBackend struct {
	data map[string]string
	err  error
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{data: make(map[string]string)}
}

func (m *memoryBackend) Read(key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryBackend) Write(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memoryBackend) Delete(key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

// The session depends on this contract only.
var _ engine.BirthDateStore = (*store.Store)(nil)

func TestStore_Namespace(t *testing.T) {
	mem := newMemoryBackend()
	s := store.New(mem)

	s.Set(config.StoreKeyBirth, "1990-01-01")
	assert.Equal(t, "lifegrid:birthdate", s.Key(config.StoreKeyBirth))
	assert.Equal(t, map[string]string{"lifegrid:birthdate": "1990-01-01"}, mem.data)

	assert.True(t, s.Has(config.StoreKeyBirth))
	assert.Equal(t, "1990-01-01", s.Get(config.StoreKeyBirth, "x"))

	s.Remove(config.StoreKeyBirth)
	assert.False(t, s.Has(config.StoreKeyBirth))
	assert.Equal(t, "x", s.Get(config.StoreKeyBirth, "x"))
}

func TestStore_CustomNamespace(t *testing.T) {
	mem := newMemoryBackend()
	s := store.NewWithNamespace("other", mem)
	s.Set("k", "v")
	assert.Contains(t, mem.data, "other:k")
}

// TestStore_FailuresSwallowed verifies that a broken backend behaves as an
// empty store and never panics.
func TestStore_FailuresSwallowed(t *testing.T) {
	mem := newMemoryBackend()
	mem.err = errors.New("disk full")
	s := store.New(mem)

	assert.NotPanics(t, func() {
		s.Set(config.StoreKeyBirth, "1990-01-01")
		s.Remove(config.StoreKeyBirth)
	})
	assert.Equal(t, "fallback", s.Get(config.StoreKeyBirth, "fallback"))
	assert.False(t, s.Has(config.StoreKeyBirth))
}

func TestStore_Switch(t *testing.T) {
	from, to := newMemoryBackend(), newMemoryBackend()
	s := store.New(from)
	s.Set(config.StoreKeyBirth, "1990-01-01")

	s.Switch(to, config.StoreKeyBirth, "absent")

	assert.Empty(t, from.data)
	assert.Equal(t, map[string]string{"lifegrid:birthdate": "1990-01-01"}, to.data)
	assert.Equal(t, "1990-01-01", s.Get(config.StoreKeyBirth, ""))
}

func TestStore_SwitchToBrokenBackend(t *testing.T) {
	from, to := newMemoryBackend(), newMemoryBackend()
	to.err = errors.New("locked")
	s := store.New(from)
	s.Set(config.StoreKeyBirth, "1990-01-01")

	s.Switch(to, config.StoreKeyBirth)

	assert.Len(t, from.data, 1, "the value stays where it was")
	assert.Equal(t, "", s.Get(config.StoreKeyBirth, ""))
}

func TestPreferencesBackend(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := store.New(store.PreferencesBackend{Prefs: a.Preferences()})
	assert.False(t, s.Has(config.StoreKeyBirth))

	s.Set(config.StoreKeyBirth, "2000-02-29")
	assert.Equal(t, "2000-02-29", a.Preferences().String("lifegrid:birthdate"))
	assert.True(t, s.Has(config.StoreKeyBirth))

	s.Set(config.StoreKeyBirth, "")
	assert.False(t, s.Has(config.StoreKeyBirth), "empty values are absent")

	s.Set(config.StoreKeyBirth, "2000-02-29")
	s.Remove(config.StoreKeyBirth)
	assert.Equal(t, "none", s.Get(config.StoreKeyBirth, "none"))
}

func TestKeyringBackend(t *testing.T) {
	keyring.MockInit()

	s := store.New(store.KeyringBackend{Service: config.KeyringService})
	assert.False(t, s.Has(config.StoreKeyBirth))

	s.Set(config.StoreKeyBirth, "1985-11-03")
	got, err := keyring.Get(config.KeyringService, "lifegrid:birthdate")
	require.NoError(t, err)
	assert.Equal(t, "1985-11-03", got)
	assert.Equal(t, "1985-11-03", s.Get(config.StoreKeyBirth, ""))

	s.Remove(config.StoreKeyBirth)
	assert.False(t, s.Has(config.StoreKeyBirth))

	// Removing twice is not an error.
	b := store.KeyringBackend{Service: config.KeyringService}
	assert.NoError(t, b.Delete("lifegrid:birthdate"))
}

func TestKeyringBackend_Unavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Cleanup(keyring.MockInit)

	b := store.KeyringBackend{Service: config.KeyringService}
	_, _, err := b.Read("k")
	assert.Error(t, err)

	s := store.New(b)
	assert.Equal(t, "fb", s.Get(config.StoreKeyBirth, "fb"))
	assert.NotPanics(t, func() { s.Set(config.StoreKeyBirth, "1990-01-01") })
}

func TestNewBackend(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	b, err := store.NewBackend(config.StoreBackendPreferences, a.Preferences())
	require.NoError(t, err)
	assert.IsType(t, store.PreferencesBackend{}, b)

	b, err = store.NewBackend("", a.Preferences())
	require.NoError(t, err)
	assert.IsType(t, store.PreferencesBackend{}, b)

	b, err = store.NewBackend(config.StoreBackendKeyring, a.Preferences())
	require.NoError(t, err)
	assert.IsType(t, store.KeyringBackend{}, b)

	_, err = store.NewBackend("cloud", a.Preferences())
	assert.Error(t, err)
}
