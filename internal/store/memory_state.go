package store

import (
	"context"
	"sync"
)

// memoryStateRepository keeps state for the lifetime of the process. It is
// used when no database file is configured.
type memoryStateRepository struct {
	mu      sync.RWMutex
	entries map[string]StateEntry
}

// NewMemoryStateRepository returns an in-memory [StateRepository].
func NewMemoryStateRepository() StateRepository {
	return &memoryStateRepository{entries: make(map[string]StateEntry)}
}

func (m *memoryStateRepository) GetState(_ context.Context, key string) (StateEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return StateEntry{}, ErrStateNotFound
	}
	entry.Value = append([]byte(nil), entry.Value...)
	return entry, nil
}

func (m *memoryStateRepository) PutState(_ context.Context, entry StateEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.Value = append([]byte(nil), entry.Value...)
	m.entries[entry.Key] = entry
	return nil
}

func (m *memoryStateRepository) DeleteState(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
