package camsettings

import (
	"github.com/dshills/camsettings/pref"
)

// OnSettingChangedListener is notified every time a persisted setting
// changes in the global store or the currently cached custom store.
//
// Listeners are tracked by identity: implementations must be comparable,
// which in practice means using a pointer type. Registering the same
// listener twice is a no-op.
type OnSettingChangedListener interface {
	// OnSettingChanged is called once per key-level change with the
	// originating manager and the changed key.
	OnSettingChanged(m *Manager, key string)
}

// storeAdapter bridges a caller-facing listener to the store-level change
// notification contract.
type storeAdapter struct {
	manager  *Manager
	listener OnSettingChangedListener
}

// PreferenceChanged implements pref.ChangeListener.
func (a *storeAdapter) PreferenceChanged(key string) {
	a.listener.OnSettingChanged(a.manager, key)
}

// listenerRegistry tracks the binding between each caller listener and its
// store-level adapter, so the adapter can be unregistered and moved across
// scope switches. The registry carries no lock of its own; the owning
// Manager serializes access.
type listenerRegistry struct {
	bindings map[OnSettingChangedListener]*storeAdapter
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{
		bindings: make(map[OnSettingChangedListener]*storeAdapter),
	}
}

// contains reports whether listener is already bound.
func (lr *listenerRegistry) contains(listener OnSettingChangedListener) bool {
	_, ok := lr.bindings[listener]
	return ok
}

// add binds listener to adapter.
func (lr *listenerRegistry) add(listener OnSettingChangedListener, adapter *storeAdapter) {
	lr.bindings[listener] = adapter
}

// remove drops the binding for listener and returns its adapter, or nil if
// the listener was not bound.
func (lr *listenerRegistry) remove(listener OnSettingChangedListener) *storeAdapter {
	adapter, ok := lr.bindings[listener]
	if !ok {
		return nil
	}
	delete(lr.bindings, listener)
	return adapter
}

// adapters returns every tracked adapter.
func (lr *listenerRegistry) adapters() []pref.ChangeListener {
	result := make([]pref.ChangeListener, 0, len(lr.bindings))
	for _, adapter := range lr.bindings {
		result = append(result, adapter)
	}
	return result
}

// clear drops every binding.
func (lr *listenerRegistry) clear() {
	lr.bindings = make(map[OnSettingChangedListener]*storeAdapter)
}

// len returns the number of tracked listeners.
func (lr *listenerRegistry) len() int {
	return len(lr.bindings)
}
