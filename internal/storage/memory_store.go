package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps records in process memory. It backs the degraded mode
// used when SQLite cannot be opened, and the tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = json.RawMessage(payload)
	return nil
}

func (s *MemoryStore) GetAll(_ context.Context) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(s.records))
	for key, value := range s.records {
		out[key] = value
	}
	return out, nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, records map[string]json.RawMessage) error {
	next := make(map[string]json.RawMessage, len(records))
	for key, value := range records {
		next[key] = value
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = next
	return nil
}

func (s *MemoryStore) Close() error { return nil }
