package camsettings

import (
	"github.com/dshills/camsettings/pref"
)

// globalStoreSuffix names the application-wide store, appended to the
// application name.
const globalStoreSuffix = "_preferences"

// scopeRouter resolves a scope name to a preference store. The global store
// is opened once and held for the router's lifetime; at most one custom
// store is cached at a time. The router carries no lock of its own; the
// owning Manager serializes access.
type scopeRouter struct {
	provider pref.Provider
	appName  string
	global   pref.Store
	custom   pref.Store
}

func newScopeRouter(provider pref.Provider, appName string) *scopeRouter {
	return &scopeRouter{
		provider: provider,
		appName:  appName,
		global:   provider.OpenStore(appName + globalStoreSuffix),
	}
}

// resolve returns the store for scope. Resolving a custom scope closes the
// cached custom store (unregistering every tracked adapter; its data is
// untouched and available on a future resolve), opens the store for the
// sanitized scope name, registers every tracked adapter on it and caches
// it. Resolving the same custom scope twice still performs the cycle: the
// provider returns the same handle, so the listener set is unchanged.
func (r *scopeRouter) resolve(scope string, adapters []pref.ChangeListener) pref.Store {
	if scope == ScopeGlobal {
		return r.global
	}

	if r.custom != nil {
		r.closeStore(r.custom, adapters)
	}
	r.custom = r.openStore(scope, adapters)
	return r.custom
}

// openStore opens the store for a custom scope and registers every tracked
// adapter on it.
func (r *scopeRouter) openStore(scope string, adapters []pref.ChangeListener) pref.Store {
	s := r.provider.OpenStore(r.appName + sanitizeScope(scope))
	for _, a := range adapters {
		s.RegisterChangeListener(a)
	}
	return s
}

// closeStore unregisters every tracked adapter from a custom store. The
// store's data is not deleted; closing only stops adapters from firing for
// a scope they no longer serve.
func (r *scopeRouter) closeStore(s pref.Store, adapters []pref.ChangeListener) {
	for _, a := range adapters {
		s.UnregisterChangeListener(a)
	}
}
