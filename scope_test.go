package camsettings

import (
	"strings"
	"testing"
)

func TestCameraScope(t *testing.T) {
	if got := CameraScope("0"); got != "_preferences_camera_0" {
		t.Errorf("CameraScope = %q", got)
	}
}

func TestCameraScope_SanitizesSeparators(t *testing.T) {
	// External cameras can carry ids like "2/usb-1", which would be an
	// invalid store name.
	got := CameraScope("2/usb-1")
	if strings.Contains(got, "/") {
		t.Errorf("CameraScope left a path separator in %q", got)
	}
	if got != "_preferences_camera_2_usb-1" {
		t.Errorf("CameraScope = %q", got)
	}
}

func TestModuleScope_DistinctPrefix(t *testing.T) {
	camera := CameraScope("photo")
	module := ModuleScope("photo")
	if camera == module {
		t.Error("camera and module scopes must never collide")
	}
	if got := ModuleScope("photo"); got != "_preferences_module_photo" {
		t.Errorf("ModuleScope = %q", got)
	}
}

func TestSanitizeScope(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a/b", "a_b"},
		{"a/b/c", "a_b_c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeScope(tt.in); got != tt.want {
			t.Errorf("sanitizeScope(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
