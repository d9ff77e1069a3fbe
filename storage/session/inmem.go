package sessionstore

import (
	"sync"

	"github.com/sisacad/academico/core/session"
)

// MemStorage is a volatile store for tests and one-shot CLI runs.
type MemStorage struct {
	mu   sync.Mutex
	data map[string]string
}

var _ session.Storage = (*MemStorage)(nil)

func OpenMem() *MemStorage {
	return &MemStorage{data: make(map[string]string)}
}

func (s *MemStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemStorage) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}
