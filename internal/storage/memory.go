package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for tests and throwaway runs. Values go
// through a JSON round trip so it behaves like the persistent implementations.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(key string, dest any) error {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()
	return nil
}
