package camsettings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/camsettings/logging"
	"github.com/dshills/camsettings/pref"
)

// Manager provides typed get/set access to scoped settings backed by
// preference stores, with defaults, possible-value enumerations and change
// notification.
//
// A single mutex serializes every public operation, making each method
// atomic with respect to every other. Change notifications are delivered
// asynchronously by the stores, so listener callbacks may call back into
// the Manager.
type Manager struct {
	mu        sync.Mutex
	router    *scopeRouter
	defaults  *defaultsStore
	listeners *listenerRegistry
	log       *logging.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for recovery events.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Manager. The global store is opened immediately under the
// name appName + "_preferences" and held for the manager's lifetime.
func New(provider pref.Provider, appName string, opts ...Option) *Manager {
	m := &Manager{
		router:    newScopeRouter(provider, appName),
		defaults:  newDefaultsStore(),
		listeners: newListenerRegistry(),
		log:       logging.Null,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Close removes all listeners. Call at teardown.
func (m *Manager) Close() {
	m.RemoveAllListeners()
}

// GlobalStore returns the manager's global preference store. Useful to
// modules defining their own upgrade paths.
func (m *Manager) GlobalStore() pref.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.router.global
}

// AddListener registers a listener, which will be called whenever any
// setting in the global store or the current custom store changes.
// Registering an already-registered listener is a no-op.
func (m *Manager) AddListener(listener OnSettingChangedListener) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if listener == nil {
		return ErrNilListener
	}
	if m.listeners.contains(listener) {
		return nil
	}

	adapter := &storeAdapter{manager: m, listener: listener}
	m.listeners.add(listener, adapter)

	m.router.global.RegisterChangeListener(adapter)
	if m.router.custom != nil {
		m.router.custom.RegisterChangeListener(adapter)
	}

	m.log.Debug("listeners registered: %d", m.listeners.len())
	return nil
}

// RemoveListener unregisters a listener. Removing a listener that was never
// registered is a no-op.
func (m *Manager) RemoveListener(listener OnSettingChangedListener) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if listener == nil {
		return ErrNilListener
	}

	adapter := m.listeners.remove(listener)
	if adapter == nil {
		return nil
	}

	m.router.global.UnregisterChangeListener(adapter)
	if m.router.custom != nil {
		m.router.custom.UnregisterChangeListener(adapter)
	}
	return nil
}

// RemoveAllListeners unregisters every listener.
func (m *Manager) RemoveAllListeners() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, adapter := range m.listeners.adapters() {
		m.router.global.UnregisterChangeListener(adapter)
		if m.router.custom != nil {
			m.router.custom.UnregisterChangeListener(adapter)
		}
	}
	m.listeners.clear()
}

// SetDefaults registers the default and possible values for a key as
// strings. The default is not validated against the possible values.
func (m *Manager) SetDefaults(key, defaultValue string, possibleValues []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults.store(key, defaultValue, append([]string(nil), possibleValues...))
}

// SetIntDefaults registers an integer default and possible values for a
// key, encoded canonically.
func (m *Manager) SetIntDefaults(key string, defaultValue int, possibleValues []int) {
	encoded := make([]string, len(possibleValues))
	for i, v := range possibleValues {
		encoded[i] = convertInt(v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults.store(key, convertInt(defaultValue), encoded)
}

// SetBoolDefaults registers a boolean default for a key. The possible
// values are always {"0", "1"}.
func (m *Manager) SetBoolDefaults(key string, defaultValue bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults.store(key, convertBool(defaultValue), []string{"0", "1"})
}

// GetStringDefault returns the registered default for key, or "" if none is
// registered.
func (m *Manager) GetStringDefault(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, _ := m.defaults.defaultValue(key)
	return v
}

// GetIntDefault returns the registered default for key decoded as an int,
// or 0 if none is registered.
func (m *Manager) GetIntDefault(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intDefault(key)
}

// GetBoolDefault returns the registered default for key decoded as a bool,
// or false if none is registered.
func (m *Manager) GetBoolDefault(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boolDefault(key)
}

// GetString returns the value for key in scope, falling back to the
// registered default ("" if none is registered).
func (m *Manager) GetString(scope, key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, _ := m.currentString(scope, key)
	return v
}

// GetStringOr returns the value for key in scope, falling back to def.
func (m *Manager) GetStringOr(scope, key, def string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	store := m.router.resolve(scope, m.listeners.adapters())
	if v, ok := m.storedString(store, key); ok {
		return v
	}
	return def
}

// GetInt returns the value for key in scope decoded as an int, falling back
// to the registered default (0 if none is registered). A stored value that
// is not a valid decimal integer returns a FormatError.
func (m *Manager) GetInt(scope, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	def, err := m.intDefault(key)
	if err != nil {
		return 0, err
	}
	return m.getInt(scope, key, def)
}

// GetIntOr returns the value for key in scope decoded as an int, falling
// back to def.
func (m *Manager) GetIntOr(scope, key string, def int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getInt(scope, key, def)
}

// GetBool returns the value for key in scope decoded as a bool, falling
// back to the registered default (false if none is registered). A stored
// value that is not a valid decimal integer returns a FormatError.
func (m *Manager) GetBool(scope, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	def, err := m.boolDefault(key)
	if err != nil {
		return false, err
	}
	return m.getBool(scope, key, def)
}

// GetBoolOr returns the value for key in scope decoded as a bool, falling
// back to def.
func (m *Manager) GetBoolOr(scope, key string, def bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getBool(scope, key, def)
}

// GetIndexOfCurrentValue returns the position of the current value of key
// in its registered possible values.
//
// For example, with possible values [2,3,5] and a current value of 3, the
// index is 1. Fails with ErrNoPossibleValues when no possible values are
// registered for key, and with ErrUnknownValue when the current value is
// not among them (set through a raw SetString, for instance).
func (m *Manager) GetIndexOfCurrentValue(scope, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	possible := m.defaults.possibleValues(key)
	if len(possible) == 0 {
		return 0, fmt.Errorf("%w: scope=%s key=%s", ErrNoPossibleValues, scope, key)
	}

	current, ok := m.currentString(scope, key)
	if ok {
		for i, v := range possible {
			if v == current {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: scope=%s key=%s", ErrUnknownValue, scope, key)
}

// SetString stores a string value for key in scope. No conversion occurs.
func (m *Manager) SetString(scope, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(scope, key, value)
}

// SetInt stores an integer value for key in scope, encoded canonically.
func (m *Manager) SetInt(scope, key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(scope, key, convertInt(value))
}

// SetBool stores a boolean value for key in scope, encoded canonically.
func (m *Manager) SetBool(scope, key string, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(scope, key, convertBool(value))
}

// SetToDefault sets key in scope to its registered default. Fails with
// ErrNoDefault when no default is registered for key.
func (m *Manager) SetToDefault(scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	def, ok := m.defaults.defaultValue(key)
	if !ok {
		return fmt.Errorf("%w: key=%s", ErrNoDefault, key)
	}
	m.set(scope, key, def)
	return nil
}

// SetValueByIndex sets key in scope to the possible value at index.
//
// For example, with possible values [2,3,5] and index 2, the stored value
// is 5. Fails with ErrNoPossibleValues when no possible values are
// registered for key, and with ErrIndexOutOfRange when index is outside
// [0, len).
func (m *Manager) SetValueByIndex(scope, key string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	possible := m.defaults.possibleValues(key)
	if len(possible) == 0 {
		return fmt.Errorf("%w: scope=%s key=%s", ErrNoPossibleValues, scope, key)
	}
	if index < 0 || index >= len(possible) {
		return fmt.Errorf("%w: scope=%s key=%s index=%d", ErrIndexOutOfRange, scope, key, index)
	}

	m.set(scope, key, possible[index])
	return nil
}

// IsSet reports whether key has a stored value in scope.
func (m *Manager) IsSet(scope, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	store := m.router.resolve(scope, m.listeners.adapters())
	return store.Contains(key)
}

// IsDefault reports whether the current value of key in scope equals its
// registered default. Returns false, not an error, when the value is absent
// or no default is registered.
func (m *Manager) IsDefault(scope, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	def, hasDefault := m.defaults.defaultValue(key)
	current, ok := m.currentString(scope, key)
	if !ok {
		return false
	}
	return hasDefault && current == def
}

// Remove deletes key from scope. Removing an absent key is a no-op.
func (m *Manager) Remove(scope, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store := m.router.resolve(scope, m.listeners.adapters())
	store.Remove(key)
}

// set writes an encoded value through the resolved store. Callers hold m.mu.
func (m *Manager) set(scope, key, value string) {
	store := m.router.resolve(scope, m.listeners.adapters())
	store.Put(key, value)
}

// currentString returns the effective string value for key in scope: the
// stored value when present, the registered default otherwise. ok is false
// when neither exists. Callers hold m.mu.
func (m *Manager) currentString(scope, key string) (value string, ok bool) {
	store := m.router.resolve(scope, m.listeners.adapters())
	if v, stored := m.storedString(store, key); stored {
		return v, true
	}
	return m.defaults.defaultValue(key)
}

// storedString reads key from store, applying the self-healing policy: a
// value stored under an incompatible native type is removed and reported as
// absent, so the caller's default takes over. Callers hold m.mu.
func (m *Manager) storedString(store pref.Store, key string) (value string, ok bool) {
	if !store.Contains(key) {
		return "", false
	}
	v, err := store.Get(key, "")
	if err != nil {
		if !errors.Is(err, pref.ErrTypeMismatch) {
			return "", false
		}
		m.log.Warn("existing preference with invalid type, removing and returning default: %v", err)
		store.Remove(key)
		return "", false
	}
	return v, true
}

// getInt reads key from scope and decodes it. Callers hold m.mu.
func (m *Manager) getInt(scope, key string, def int) (int, error) {
	store := m.router.resolve(scope, m.listeners.adapters())
	v, ok := m.storedString(store, key)
	if !ok {
		return def, nil
	}
	n, err := parseInt(v)
	if err != nil {
		return 0, &FormatError{Key: key, Value: v, Err: err}
	}
	return n, nil
}

// getBool reads key from scope and decodes it. Callers hold m.mu.
func (m *Manager) getBool(scope, key string, def bool) (bool, error) {
	store := m.router.resolve(scope, m.listeners.adapters())
	v, ok := m.storedString(store, key)
	if !ok {
		return def, nil
	}
	b, err := parseBool(v)
	if err != nil {
		return false, &FormatError{Key: key, Value: v, Err: err}
	}
	return b, nil
}

// intDefault decodes the registered default for key. Callers hold m.mu.
func (m *Manager) intDefault(key string) (int, error) {
	v, ok := m.defaults.defaultValue(key)
	if !ok {
		return 0, nil
	}
	n, err := parseInt(v)
	if err != nil {
		return 0, &FormatError{Key: key, Value: v, Err: err}
	}
	return n, nil
}

// boolDefault decodes the registered default for key. Callers hold m.mu.
func (m *Manager) boolDefault(key string) (bool, error) {
	v, ok := m.defaults.defaultValue(key)
	if !ok {
		return false, nil
	}
	b, err := parseBool(v)
	if err != nil {
		return false, &FormatError{Key: key, Value: v, Err: err}
	}
	return b, nil
}
