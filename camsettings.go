// Package camsettings provides scoped, typed access to persisted settings.
//
// Types
//
// All values are persisted as strings through a pref.Store. Booleans and
// integers are converted to a canonical string encoding on write ("0"/"1"
// for booleans, decimal for integers), which makes reading them back as any
// of the three types consistent. A stored string that cannot be decoded as
// the requested numeric type surfaces as a FormatError; a value that exists
// in the store under an incompatible native type is removed and replaced by
// the default (self-healing).
//
// Scope
//
// Every accessor takes a scope: ScopeGlobal addresses the application-wide
// store, any other string addresses a custom store private to that scope.
// Use CameraScope and ModuleScope to construct custom scope names
// consistently. The manager keeps the global store open for its lifetime and
// caches exactly one custom store at a time; switching custom scopes moves
// every registered listener to the new store, so the listener set is
// scope-invariant from the caller's perspective.
//
// Keys and defaults
//
// Defaults and possible-value enumerations live outside the persistent
// stores, in an in-memory cache populated by SetDefaults and friends (or a
// TOML catalog via LoadDefaults). Registering them is optional unless
// GetIndexOfCurrentValue or SetValueByIndex is used for the key.
package camsettings
