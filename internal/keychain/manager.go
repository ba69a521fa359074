// Package keychain provides thread-safe access to the OS credential store.
//
// The CLI keeps two secrets there: the identity API's session cookies, which
// let a later process resume the session, and the last known member snapshot
// shown while offline. macOS uses the security command when available, other
// platforms go through 99designs/keyring.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	apperrors "sss/cli/internal/errors"
)

var (
	globalManager *Manager
	mu            sync.Mutex
)

// ErrNotFound is returned when a key holds no value.
var ErrNotFound = errors.New("keychain: item not found")

var errBackendNotFound = errors.New("key not found")

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "sss"

// Keys used for storing secrets in the OS keychain.
const (
	KeySessionCookies = "session_cookies"
	KeyMemberSnapshot = "member_snapshot"
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend is implemented by native store wrappers.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// NewManager opens the platform credential store.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		if backend, err := newSecurityBackend(); err == nil {
			return &Manager{backend: backend}, nil
		}
	}

	ring, err := openRing()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KeychainUnavailable, "open credential store", err)
	}
	return NewManagerWithRing(ring), nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the process-wide manager, opening it on first use.
// A failed open is retried on the next call.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}
	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

func allowedBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		// pass needs: brew install pass gnupg
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}
	default:
		return []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.KeyCtlBackend,
			keyring.PassBackend,
		}
	}
}

// openRing opens the OS keyring using native backends only; there is no
// file fallback.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         allowedBackends(),
		PassPrefix:              ServiceName,
		KeyCtlScope:             "user",
		LibSecretCollectionName: "login",
		KWalletAppID:            ServiceName,
		KWalletFolder:           ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

func (m *Manager) set(key string, data []byte) error {
	if m.backend != nil {
		return m.backend.Set(key, string(data))
	}
	return m.ring.Set(keyring.Item{Key: key, Data: data})
}

func (m *Manager) get(key string) ([]byte, error) {
	if m.backend != nil {
		v, err := m.backend.Get(key)
		if err != nil {
			if errors.Is(err, errBackendNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if v == "" {
			return nil, ErrNotFound
		}
		return []byte(v), nil
	}

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(it.Data) == 0 {
		return nil, ErrNotFound
	}
	return it.Data, nil
}

func (m *Manager) remove(key string) {
	if m.backend != nil {
		_ = m.backend.Delete(key)
		return
	}
	_ = m.ring.Remove(key)
}

// SaveSessionCookies stores the serialized session cookies.
func (m *Manager) SaveSessionCookies(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(KeySessionCookies, data)
}

// LoadSessionCookies returns the serialized session cookies or ErrNotFound.
func (m *Manager) LoadSessionCookies() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(KeySessionCookies)
}

// SaveMemberSnapshot stores the serialized member snapshot.
func (m *Manager) SaveMemberSnapshot(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(KeyMemberSnapshot, data)
}

// LoadMemberSnapshot returns the serialized member snapshot or ErrNotFound.
func (m *Manager) LoadMemberSnapshot() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(KeyMemberSnapshot)
}

// ClearSession removes every session secret. Missing items are ignored.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(KeySessionCookies)
	m.remove(KeyMemberSnapshot)
	return nil
}
