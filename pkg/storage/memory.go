package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is a concurrent in-process Store. Records are kept as encoded JSON
// so loads always return independent copies.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, key string, v any) error {
	if key == "" {
		return ErrInvalidKey
	}

	m.mu.RLock()
	raw, ok := m.records[key]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrNotFound
	}
	return nil
}

func (m *Memory) Save(ctx context.Context, key string, v any) error {
	if key == "" {
		return ErrInvalidKey
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.records[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
