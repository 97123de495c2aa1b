package camsettings

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// catalogEntry mirrors one table of a defaults catalog file.
type catalogEntry struct {
	Default string   `toml:"default"`
	Values  []string `toml:"values"`
}

// LoadDefaults registers defaults and possible values from a TOML catalog
// file. Each top-level table names a key:
//
//	[iso]
//	default = "100"
//	values = ["100", "200", "400"]
//
// A missing file is not an error; hosts ship optional catalogs. Entries
// overwrite any defaults already registered for the same key.
func (m *Manager) LoadDefaults(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading defaults catalog %s: %w", path, err)
	}
	return m.loadDefaults(path, data)
}

// LoadDefaultsFrom registers defaults and possible values from a TOML
// catalog read from r.
func (m *Manager) LoadDefaultsFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading defaults catalog: %w", err)
	}
	return m.loadDefaults("<reader>", data)
}

func (m *Manager) loadDefaults(source string, data []byte) error {
	var catalog map[string]catalogEntry
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, entry := range catalog {
		m.defaults.store(key, entry.Default, entry.Values)
	}
	return nil
}
