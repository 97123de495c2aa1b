package camsettings

import (
	"errors"
	"testing"
	"time"
)

// recordingListener forwards changed keys to a channel.
type recordingListener struct {
	manager *Manager
	ch      chan string
}

func newRecordingListener(buffer int) *recordingListener {
	return &recordingListener{ch: make(chan string, buffer)}
}

func (l *recordingListener) OnSettingChanged(m *Manager, key string) {
	l.manager = m
	l.ch <- key
}

func expectChange(t *testing.T, l *recordingListener, want string) {
	t.Helper()
	select {
	case got := <-l.ch:
		if got != want {
			t.Fatalf("changed key = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for change on %q", want)
	}
}

func expectNoChange(t *testing.T, l *recordingListener) {
	t.Helper()
	select {
	case got := <-l.ch:
		t.Fatalf("unexpected change notification for %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAddListener_Nil(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.AddListener(nil); !errors.Is(err, ErrNilListener) {
		t.Errorf("AddListener(nil) = %v, want ErrNilListener", err)
	}
	if err := m.RemoveListener(nil); !errors.Is(err, ErrNilListener) {
		t.Errorf("RemoveListener(nil) = %v, want ErrNilListener", err)
	}
}

func TestAddListener_DuplicateIsNoOp(t *testing.T) {
	m, _ := newTestManager(t)
	l := newRecordingListener(8)

	if err := m.AddListener(l); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}
	if err := m.AddListener(l); err != nil {
		t.Fatalf("duplicate AddListener failed: %v", err)
	}
	if got := listenerCount(m); got != 1 {
		t.Errorf("listener count = %d, want 1", got)
	}

	m.SetString(ScopeGlobal, "iso", "100")
	expectChange(t, l, "iso")
	expectNoChange(t, l)
}

func TestListener_FiresOnGlobalChange(t *testing.T) {
	m, _ := newTestManager(t)
	l := newRecordingListener(8)

	if err := m.AddListener(l); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}

	m.SetString(ScopeGlobal, "flash_mode", "on")
	expectChange(t, l, "flash_mode")

	if l.manager != m {
		t.Error("callback did not receive the originating manager")
	}
}

func TestListener_FiresOnCustomScopeChange(t *testing.T) {
	m, _ := newTestManager(t)
	l := newRecordingListener(8)

	if err := m.AddListener(l); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}

	m.SetString(CameraScope("0"), "iso", "800")
	expectChange(t, l, "iso")
}

func TestListener_FiresOnRemove(t *testing.T) {
	m, _ := newTestManager(t)

	m.SetString(ScopeGlobal, "iso", "100")

	l := newRecordingListener(8)
	if err := m.AddListener(l); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}

	m.Remove(ScopeGlobal, "iso")
	expectChange(t, l, "iso")
}

func TestListener_SurvivesScopeSwitch(t *testing.T) {
	m, _ := newTestManager(t)
	front := CameraScope("0")
	back := CameraScope("1")

	l := newRecordingListener(16)
	if err := m.AddListener(l); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}

	m.SetString(front, "iso", "100")
	expectChange(t, l, "iso")

	// Switch scopes and back again; the listener must still fire.
	m.SetString(back, "iso", "800")
	expectChange(t, l, "iso")

	m.SetString(front, "wb", "daylight")
	expectChange(t, l, "wb")
}

func TestListener_DoesNotFireForInactiveScope(t *testing.T) {
	m, provider := newTestManager(t)
	front := CameraScope("0")
	back := CameraScope("1")

	l := newRecordingListener(8)
	if err := m.AddListener(l); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}

	// Make back the cached custom scope, leaving front's store cold.
	m.SetString(back, "iso", "800")
	expectChange(t, l, "iso")

	// A foreign write to the cold store must not reach the listener.
	cold := provider.OpenStore(testAppName + sanitizeScope(front))
	cold.Put("wb", "cloudy")
	expectNoChange(t, l)
}

func TestRemoveListener_StopsDelivery(t *testing.T) {
	m, _ := newTestManager(t)
	removed := newRecordingListener(8)
	kept := newRecordingListener(8)

	if err := m.AddListener(removed); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}
	if err := m.AddListener(kept); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}
	if err := m.RemoveListener(removed); err != nil {
		t.Fatalf("RemoveListener failed: %v", err)
	}

	m.SetString(ScopeGlobal, "iso", "100")

	// Delivery is ordered within a store: once the kept listener has seen
	// the event, the removed one would already have been called.
	expectChange(t, kept, "iso")
	expectNoChange(t, removed)
}

func TestRemoveListener_Unregistered(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.RemoveListener(newRecordingListener(1)); err != nil {
		t.Errorf("removing an unregistered listener = %v, want nil", err)
	}
}

func TestRemoveAllListeners(t *testing.T) {
	m, _ := newTestManager(t)
	first := newRecordingListener(8)
	second := newRecordingListener(8)

	if err := m.AddListener(first); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}
	if err := m.AddListener(second); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}

	m.RemoveAllListeners()
	if got := listenerCount(m); got != 0 {
		t.Errorf("listener count = %d, want 0", got)
	}

	m.SetString(ScopeGlobal, "iso", "100")
	expectNoChange(t, first)
	expectNoChange(t, second)
}
