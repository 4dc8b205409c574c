package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process key-value store. It backs --no-save runs and tests.
type Memory struct {
	mu      sync.RWMutex
	values  map[string][]byte
	updated map[string]time.Time

	// FailSave, when set, is returned by every Save.
	FailSave error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		values:  make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

// Load returns a copy of the value under key, or nil if there is none.
func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of value under key.
func (m *Memory) Save(_ context.Context, key string, value []byte) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.updated[key] = time.Now()
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.updated, key)
	return nil
}

// UpdatedAt returns when key was last saved.
func (m *Memory) UpdatedAt(_ context.Context, key string) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.updated[key]
	return t, ok, nil
}
