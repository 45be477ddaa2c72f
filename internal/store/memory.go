// internal/store/memory.go
//
// In-memory implementation of Store.
// Used in tests and when durability is not required; state is lost when
// the process restarts. Concurrency-safe via RWMutex.

package store

import (
	"context"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
)

// memory is a map-based Store implementation.
type memory struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte // playerID → key → raw JSON
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[string]map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, playerID, key string, dest any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.records[playerID][key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memory) Set(ctx context.Context, playerID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[playerID] == nil {
		m.records[playerID] = make(map[string][]byte)
	}
	m.records[playerID][key] = raw
	return nil
}

func (m *memory) Remove(ctx context.Context, playerID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records[playerID], key)
	return nil
}

func (m *memory) Keys(ctx context.Context, playerID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records[playerID]))
	for k := range m.records[playerID] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
