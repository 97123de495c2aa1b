package camsettings

import (
	"strings"
)

// ScopeGlobal stores and retrieves settings from the application-wide
// store. Any other scope string addresses a custom store private to that
// scope.
const ScopeGlobal = "default_scope"

// Prefixes for the two kinds of custom scope. Keeping them distinct
// guarantees a camera scope and a module scope can never collide.
const (
	// CameraScopePrefix namespaces per-camera-device scopes.
	CameraScopePrefix = "_preferences_camera_"
	// ModuleScopePrefix namespaces per-module scopes.
	ModuleScopePrefix = "_preferences_module_"
)

// CameraScope returns the scope for a camera device. External camera ids
// may contain a path separator, which is invalid in a store name, so the id
// is sanitized.
func CameraScope(cameraID string) string {
	return CameraScopePrefix + sanitizeScope(cameraID)
}

// ModuleScope returns the scope for a module namespace.
func ModuleScope(namespace string) string {
	return ModuleScopePrefix + namespace
}

// sanitizeScope replaces path separators so the scope can name an
// underlying store.
func sanitizeScope(scope string) string {
	return strings.ReplaceAll(scope, "/", "_")
}
