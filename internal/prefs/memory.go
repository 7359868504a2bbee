package prefs

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store. Values vanish with the process.
type MemoryStore struct {
	mu      sync.Mutex
	ints    map[string]int
	strings map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ints:    make(map[string]int),
		strings: make(map[string]string),
	}
}

func (m *MemoryStore) GetInt(_ context.Context, key string, def int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.strings[key]; ok {
		return 0, fmt.Errorf("get int %q: stored as string: %w", key, ErrTypeMismatch)
	}
	if v, ok := m.ints[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *MemoryStore) GetString(_ context.Context, key, def string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ints[key]; ok {
		return "", fmt.Errorf("get string %q: stored as int: %w", key, ErrTypeMismatch)
	}
	if v, ok := m.strings[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *MemoryStore) SetInt(_ context.Context, key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.strings, key)
	m.ints[key] = value
	return nil
}

func (m *MemoryStore) SetString(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ints, key)
	m.strings[key] = value
	return nil
}

func (m *MemoryStore) AppendString(_ context.Context, key, fragment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ints[key]; ok {
		return fmt.Errorf("append string %q: stored as int: %w", key, ErrTypeMismatch)
	}
	m.strings[key] += fragment
	return nil
}
