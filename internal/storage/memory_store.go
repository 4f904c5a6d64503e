package storage

import "sync"

// MemoryStore is a Provider that never touches disk. Used by tests and by
// `--config :memory:` for throwaway sessions.
type MemoryStore struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	loaded bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

func (s *MemoryStore) Load() error { return s.Init() }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	blob, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (s *MemoryStore) Write(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
