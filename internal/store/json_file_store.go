package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const jsonFileName = "state.json"

// JSONFileStore keeps every key in one pretty-printed JSON object and
// rewrites the whole file on each change.
type JSONFileStore struct {
	mu       sync.Mutex
	filePath string
	data     map[string]json.RawMessage
	logger   *log.Logger
}

// OpenJSONFileStore loads dir/state.json. A missing or unreadable file
// starts an empty store.
func OpenJSONFileStore(dir string, logger *log.Logger) (*JSONFileStore, error) {
	if logger == nil {
		panic("JSONFileStore: logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}
	s := &JSONFileStore{
		filePath: filepath.Join(dir, jsonFileName),
		logger:   logger,
	}
	s.load()
	return s, nil
}

func (s *JSONFileStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *JSONFileStore) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("store: value for %q is not JSON", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append(json.RawMessage(nil), value...)
	return s.save()
}

func (s *JSONFileStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save()
}

func (s *JSONFileStore) Close() error {
	return nil
}

// Keys lists the stored keys in sorted order.
func (s *JSONFileStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *JSONFileStore) load() {
	s.data = make(map[string]json.RawMessage)
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		s.logger.Printf("JSONFileStore: load %s (no existing file)", s.filePath)
		return
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.logger.Printf("JSONFileStore: load %s failed to parse: %v", s.filePath, err)
		s.data = make(map[string]json.RawMessage)
		return
	}
	if s.data == nil {
		s.data = make(map[string]json.RawMessage)
	}
	s.logger.Printf("JSONFileStore: load %s -> %d keys", s.filePath, len(s.data))
}

// save writes to a temp file and renames it over the old one so a crash
// mid-write leaves the previous state readable.
func (s *JSONFileStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("store: replace %s: %w", s.filePath, err)
	}
	return nil
}
