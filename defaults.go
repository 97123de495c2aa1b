package camsettings

// defaultEntry holds the registered default and possible values for one key.
type defaultEntry struct {
	value    string
	possible []string
}

// defaultsStore caches per-key default values and possible-value
// enumerations. Entries are process-wide, never persisted, and lost on
// restart. The store carries no lock of its own; the owning Manager
// serializes access.
type defaultsStore struct {
	entries map[string]defaultEntry
}

func newDefaultsStore() *defaultsStore {
	return &defaultsStore{entries: make(map[string]defaultEntry)}
}

// store registers default and possible values for key, overwriting any
// prior entry. The default is not validated against the possible values;
// that is the caller's responsibility.
func (d *defaultsStore) store(key, defaultValue string, possibleValues []string) {
	d.entries[key] = defaultEntry{
		value:    defaultValue,
		possible: possibleValues,
	}
}

// defaultValue returns the registered default for key.
func (d *defaultsStore) defaultValue(key string) (string, bool) {
	e, ok := d.entries[key]
	return e.value, ok
}

// possibleValues returns the registered possible values for key, in
// registration order. The order defines the index used by the index-based
// accessors. Returns nil when no values are registered.
func (d *defaultsStore) possibleValues(key string) []string {
	return d.entries[key].possible
}
