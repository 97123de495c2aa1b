package camsettings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCatalog = `
[iso]
default = "100"
values = ["100", "200", "400"]

[flash_mode]
default = "auto"
values = ["auto", "on", "off"]

[hdr]
default = "0"
values = ["0", "1"]
`

func TestLoadDefaultsFrom(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.LoadDefaultsFrom(strings.NewReader(testCatalog)); err != nil {
		t.Fatalf("LoadDefaultsFrom failed: %v", err)
	}

	if got := m.GetStringDefault("iso"); got != "100" {
		t.Errorf("iso default = %q, want %q", got, "100")
	}
	if got := m.GetStringDefault("flash_mode"); got != "auto" {
		t.Errorf("flash_mode default = %q, want %q", got, "auto")
	}

	// Catalog entries feed the index-based accessors
	m.SetString(ScopeGlobal, "iso", "200")
	idx, err := m.GetIndexOfCurrentValue(ScopeGlobal, "iso")
	if err != nil {
		t.Fatalf("GetIndexOfCurrentValue failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}

	if err := m.SetValueByIndex(ScopeGlobal, "flash_mode", 2); err != nil {
		t.Fatalf("SetValueByIndex failed: %v", err)
	}
	if got := m.GetString(ScopeGlobal, "flash_mode"); got != "off" {
		t.Errorf("flash_mode = %q, want %q", got, "off")
	}
}

func TestLoadDefaults_File(t *testing.T) {
	m, _ := newTestManager(t)

	path := filepath.Join(t.TempDir(), "defaults.toml")
	if err := os.WriteFile(path, []byte(testCatalog), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := m.LoadDefaults(path); err != nil {
		t.Fatalf("LoadDefaults failed: %v", err)
	}
	b, err := m.GetBoolDefault("hdr")
	if err != nil {
		t.Fatalf("GetBoolDefault failed: %v", err)
	}
	if b {
		t.Error("hdr default = true, want false")
	}
}

func TestLoadDefaults_MissingFile(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.LoadDefaults(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Errorf("missing catalog = %v, want nil", err)
	}
}

func TestLoadDefaultsFrom_ParseError(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.LoadDefaultsFrom(strings.NewReader("[unclosed\ndefault ="))
	if err == nil {
		t.Fatal("expected parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error %v is not a *ParseError", err)
	}
}

func TestLoadDefaults_OverwritesRegistered(t *testing.T) {
	m, _ := newTestManager(t)

	m.SetDefaults("iso", "800", []string{"800", "1600"})
	if err := m.LoadDefaultsFrom(strings.NewReader(testCatalog)); err != nil {
		t.Fatalf("LoadDefaultsFrom failed: %v", err)
	}

	if got := m.GetStringDefault("iso"); got != "100" {
		t.Errorf("iso default = %q, want catalog value %q", got, "100")
	}
}
