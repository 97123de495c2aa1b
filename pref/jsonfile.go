package pref

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/camsettings/logging"
)

// FileStore persists preferences as a flat JSON object in a single file.
//
// The document is held in memory and written through on every mutation.
// Reads never touch the disk after open. A file that cannot be read or does
// not contain valid JSON is discarded with a logged warning and the store
// starts empty; save failures are logged and the in-memory document stays
// authoritative for the lifetime of the store.
type FileStore struct {
	mu     sync.Mutex
	path   string
	doc    string
	events *notifier
	log    *logging.Logger
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLogger sets the logger used for recovery and save-failure events.
func WithLogger(l *logging.Logger) FileOption {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// NewFileStore opens the JSON preference file at path. The file is created
// on first Put.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path:   path,
		doc:    "{}",
		events: newNotifier(),
		log:    logging.Null,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if gjson.ValidBytes(data) {
			s.doc = string(data)
		} else {
			s.log.Warn("discarding corrupt preference file %s", path)
		}
	case !os.IsNotExist(err):
		s.log.Warn("cannot read preference file %s: %v", path, err)
	}

	return s
}

// Get returns the value stored under key, or def if absent.
func (s *FileStore) Get(key, def string) (string, error) {
	s.mu.Lock()
	res := gjson.Get(s.doc, escapeKey(key))
	s.mu.Unlock()

	if !res.Exists() {
		return def, nil
	}
	if res.Type != gjson.String {
		return "", &MismatchError{Key: key, Value: res.Value()}
	}
	return res.Str, nil
}

// Put stores value under key, writes the document through to disk and
// notifies listeners.
func (s *FileStore) Put(key, value string) {
	s.mu.Lock()
	doc, err := sjson.Set(s.doc, escapeKey(key), value)
	if err != nil {
		s.mu.Unlock()
		s.log.Warn("cannot store preference %q: %v", key, err)
		return
	}
	s.doc = doc
	s.save()
	s.mu.Unlock()

	s.events.notify(key)
}

// Remove deletes key. Absent keys are a no-op.
func (s *FileStore) Remove(key string) {
	path := escapeKey(key)

	s.mu.Lock()
	if !gjson.Get(s.doc, path).Exists() {
		s.mu.Unlock()
		return
	}
	doc, err := sjson.Delete(s.doc, path)
	if err != nil {
		s.mu.Unlock()
		s.log.Warn("cannot remove preference %q: %v", key, err)
		return
	}
	s.doc = doc
	s.save()
	s.mu.Unlock()

	s.events.notify(key)
}

// Contains reports whether key has a stored value.
func (s *FileStore) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gjson.Get(s.doc, escapeKey(key)).Exists()
}

// RegisterChangeListener registers l for change notifications.
func (s *FileStore) RegisterChangeListener(l ChangeListener) {
	s.events.register(l)
}

// UnregisterChangeListener removes l.
func (s *FileStore) UnregisterChangeListener(l ChangeListener) {
	s.events.unregister(l)
}

// Close stops change delivery. Pending notifications are drained first.
func (s *FileStore) Close() {
	s.events.close()
}

// save writes the document to disk. Callers hold s.mu.
func (s *FileStore) save() {
	if err := os.WriteFile(s.path, []byte(s.doc), 0o600); err != nil {
		s.log.Warn("cannot save preference file %s: %v", s.path, err)
	}
}

// escapeKey escapes gjson/sjson path syntax so a preference key is always
// addressed as a single top-level member.
func escapeKey(key string) string {
	if !strings.ContainsAny(key, `\.|#@*?`) {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		switch r {
		case '\\', '.', '|', '#', '@', '*', '?':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DirProvider opens file stores inside a directory, one JSON file per store
// name, cached so reopening a name observes the same store.
type DirProvider struct {
	mu     sync.Mutex
	dir    string
	opts   []FileOption
	stores map[string]*FileStore
}

// NewDirProvider creates the directory if needed and returns a provider for
// it. Options are applied to every store it opens.
func NewDirProvider(dir string, opts ...FileOption) (*DirProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirProvider{
		dir:    dir,
		opts:   opts,
		stores: make(map[string]*FileStore),
	}, nil
}

// OpenStore returns the store backed by <dir>/<name>.json, creating it on
// first use.
func (p *DirProvider) OpenStore(name string) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stores[name]
	if !ok {
		s = NewFileStore(filepath.Join(p.dir, name+".json"), p.opts...)
		p.stores[name] = s
	}
	return s
}

// Close stops change delivery on every opened store.
func (p *DirProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.stores {
		s.Close()
	}
}
