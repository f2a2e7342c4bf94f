// Package store persists small string values (the last entered birthdate)
// under a namespaced key. Backend failures never reach the caller: they are
// logged and treated as a miss or a no-op.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/life-grid/internal/config"
)

// ErrUnavailable wraps every backend failure.
var ErrUnavailable = errors.New(config.ErrStoreUnavailable)

// Backend is the raw key-value medium. Read reports a missing key with
// found == false and a nil error.
type Backend interface {
	Read(key string) (value string, found bool, err error)
	Write(key, value string) error
	Delete(key string) error
}

// Store adds namespacing and failure swallowing on top of a Backend.
type Store struct {
	backend   Backend
	namespace string
	log       *slog.Logger
}

// New returns a store using the application namespace.
func New(backend Backend) *Store {
	return NewWithNamespace(config.StoreNamespace, backend)
}

// NewWithNamespace returns a store whose keys are prefixed with namespace.
func NewWithNamespace(namespace string, backend Backend) *Store {
	return &Store{
		backend:   backend,
		namespace: namespace,
		log:       slog.With(config.LogKeyComponent, config.CompStore),
	}
}

// Key returns the namespaced form of key.
func (s *Store) Key(key string) string {
	return s.namespace + config.StoreSeparator + key
}

// Get returns the stored value, or fallback when the key is absent or the
// backend fails.
func (s *Store) Get(key, fallback string) string {
	v, found, err := s.read(key)
	if err != nil || !found {
		return fallback
	}
	return v
}

// Has reports whether key holds a value. Failures count as absent.
func (s *Store) Has(key string) bool {
	_, found, err := s.read(key)
	return err == nil && found
}

// Set writes value under key. Failures are logged and ignored.
func (s *Store) Set(key, value string) {
	if err := s.backend.Write(s.Key(key), value); err != nil {
		s.failure(key, fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
}

// Remove deletes key. Failures are logged and ignored.
func (s *Store) Remove(key string) {
	if err := s.backend.Delete(s.Key(key)); err != nil {
		s.failure(key, fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
}

// Switch moves the given keys to next and makes it the active backend.
// Keys that cannot be read from the current backend are left behind.
func (s *Store) Switch(next Backend, keys ...string) {
	for _, key := range keys {
		v, found, err := s.read(key)
		if err != nil || !found {
			continue
		}
		if err := next.Write(s.Key(key), v); err != nil {
			s.failure(key, fmt.Errorf("%w: %w", ErrUnavailable, err))
			continue
		}
		s.Remove(key)
	}
	s.backend = next
	s.log.Info(config.MsgStoreSwitch, config.LogKeyBackend, fmt.Sprintf("%T", next))
}

func (s *Store) read(key string) (string, bool, error) {
	v, found, err := s.backend.Read(s.Key(key))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		s.failure(key, err)
		return "", false, err
	}
	if !found {
		s.log.Debug(config.MsgStoreMiss, config.LogKeyKey, s.Key(key))
	}
	return v, found, nil
}

func (s *Store) failure(key string, err error) {
	s.log.Warn(config.MsgStoreFailure,
		config.LogKeyKey, s.Key(key),
		config.LogKeyError, err)
}
