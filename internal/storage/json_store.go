package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type fileLayout struct {
	Version int                        `json:"version"`
	Blobs   map[string]json.RawMessage `json:"blobs"`
}

// JSONStore keeps every blob in a single JSON file. Blobs must themselves be JSON.
type JSONStore struct {
	path   string
	mu     sync.Mutex
	layout *fileLayout
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return s.loadLocked()
	}

	s.layout = &fileLayout{Version: 1, Blobs: make(map[string]json.RawMessage)}
	return s.saveLocked()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *JSONStore) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'quitwise init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	layout := &fileLayout{}
	if err := json.Unmarshal(data, layout); err != nil {
		return fmt.Errorf("failed to parse storage: %w: %w", ErrCorrupt, err)
	}
	if layout.Blobs == nil {
		layout.Blobs = make(map[string]json.RawMessage)
	}
	s.layout = layout
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// saveLocked writes to a temporary file and renames it over the store so readers
// never observe a half-written file.
func (s *JSONStore) saveLocked() error {
	data, err := json.MarshalIndent(s.layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layout == nil {
		return nil, ErrNotLoaded
	}
	blob, ok := s.layout.Blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (s *JSONStore) Write(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layout == nil {
		return ErrNotLoaded
	}
	if !json.Valid(blob) {
		return fmt.Errorf("json store only holds JSON blobs: %q is not valid JSON", key)
	}

	prev, hadPrev := s.layout.Blobs[key]
	s.layout.Blobs[key] = append(json.RawMessage(nil), blob...)
	if err := s.saveLocked(); err != nil {
		if hadPrev {
			s.layout.Blobs[key] = prev
		} else {
			delete(s.layout.Blobs, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
