// Package sessionstore provides durable key/value stores for the
// persisted session. A missing or malformed store reads back as
// "no session".
package sessionstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/sisacad/academico/core/session"
)

// FileStorage keeps the session in a single JSON file, owner-readable
// only.
type FileStorage struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

var _ session.Storage = (*FileStorage)(nil)

func OpenFile(path string) *FileStorage {
	s := &FileStorage{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	// a corrupted file is indistinguishable from no session
	_ = json.Unmarshal(raw, &s.data)
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return s
}

func (s *FileStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

func (s *FileStorage) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return s.flush()
}

func (s *FileStorage) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	raw, err := json.Marshal(s.data)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(os.WriteFile(s.path, raw, 0o600), "writing session file")
}
