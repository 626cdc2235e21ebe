// Package store defines the flat string-keyed medium tasks are persisted in.
package store

import "sync"

// KV is a key-value string store. Values are opaque to it.
// Get reports ok=false for a key that was never set.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

var _ KV = (*Memory)(nil)

// Memory keeps values in process memory. Used by tests and ephemeral runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
