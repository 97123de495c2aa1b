// Package pref provides the persistent preference-store capability consumed
// by the settings manager.
//
// A Store is a named, persistent string-keyed map with change notification.
// Values are always stored as strings; a value that exists under a key but
// is not a string (for example, a JSON number written by a foreign process)
// is reported as a type mismatch so the caller can apply its own recovery
// policy.
//
// A Put always reports a change to registered listeners; a Remove reports a
// change only when the key was present. Delivery is asynchronous and ordered
// per store, so listeners are free to call back into whatever component
// registered them.
package pref

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch indicates a stored value exists but cannot be read as a
// string.
var ErrTypeMismatch = errors.New("preference has mismatched type")

// MismatchError reports the key and offending value of a type mismatch.
type MismatchError struct {
	// Key is the preference key.
	Key string
	// Value is the non-string value found under Key.
	Value any
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("preference %q has mismatched type %T", e.Key, e.Value)
}

// Is implements error matching for MismatchError.
func (e *MismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ChangeListener receives change notifications from a Store. Listeners are
// tracked by identity, so implementations must be comparable; use a pointer
// type.
type ChangeListener interface {
	// PreferenceChanged is called once per key-level change.
	PreferenceChanged(key string)
}

// Store is a named persistent map from string keys to string values.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or def if the key is absent.
	// A value that exists but is not a string returns an error matching
	// ErrTypeMismatch.
	Get(key, def string) (string, error)

	// Put stores value under key and notifies listeners. Writes are
	// fire-and-forget; persistence failures are handled by the store.
	Put(key, value string)

	// Remove deletes key. Removing an absent key is a no-op and does not
	// notify listeners.
	Remove(key string)

	// Contains reports whether key has a stored value.
	Contains(key string) bool

	// RegisterChangeListener registers l for change notifications.
	// Registering an already-registered listener is a no-op.
	RegisterChangeListener(l ChangeListener)

	// UnregisterChangeListener removes l. Unknown listeners are ignored.
	UnregisterChangeListener(l ChangeListener)
}

// Provider opens stores by name. Opening the same name twice returns a store
// observing the same data, so values survive a scope being closed and later
// reopened.
type Provider interface {
	OpenStore(name string) Store
}
