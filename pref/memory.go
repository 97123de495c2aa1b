package pref

import (
	"sync"
)

// Memory is an in-memory Store. It is the storage used in tests and in
// hosts that do not need durability.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]any
	events *notifier
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:   make(map[string]any),
		events: newNotifier(),
	}
}

// Get returns the value stored under key, or def if absent.
func (m *Memory) Get(key, def string) (string, error) {
	m.mu.RLock()
	v, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &MismatchError{Key: key, Value: v}
	}
	return s, nil
}

// Put stores value under key and notifies listeners.
func (m *Memory) Put(key, value string) {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()

	m.events.notify(key)
}

// PutRaw stores an arbitrary value under key and notifies listeners.
// A non-string value will surface as a type mismatch on Get; this mirrors a
// foreign writer storing a native type under a settings key.
func (m *Memory) PutRaw(key string, value any) {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()

	m.events.notify(key)
}

// Remove deletes key. Absent keys are a no-op.
func (m *Memory) Remove(key string) {
	m.mu.Lock()
	_, ok := m.data[key]
	if ok {
		delete(m.data, key)
	}
	m.mu.Unlock()

	if ok {
		m.events.notify(key)
	}
}

// Contains reports whether key has a stored value.
func (m *Memory) Contains(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

// RegisterChangeListener registers l for change notifications.
func (m *Memory) RegisterChangeListener(l ChangeListener) {
	m.events.register(l)
}

// UnregisterChangeListener removes l.
func (m *Memory) UnregisterChangeListener(l ChangeListener) {
	m.events.unregister(l)
}

// Close stops change delivery. Pending notifications are drained first.
func (m *Memory) Close() {
	m.events.close()
}

// MemoryProvider opens in-memory stores, cached by name.
type MemoryProvider struct {
	mu     sync.Mutex
	stores map[string]*Memory
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{stores: make(map[string]*Memory)}
}

// OpenStore returns the store registered under name, creating it on first
// use. Repeated opens return the same store.
func (p *MemoryProvider) OpenStore(name string) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stores[name]
	if !ok {
		s = NewMemory()
		p.stores[name] = s
	}
	return s
}

// Close stops change delivery on every opened store.
func (p *MemoryProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.stores {
		s.Close()
	}
}
