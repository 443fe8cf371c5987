// Package storage provides local key/value persistence for client settings.
package storage

import (
	"fmt"
	"strings"
	"sync"
)

// Store is a small key/value store.
type Store interface {
	Close() error
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Check reports whether typ and path name a usable backend without opening it.
func Check(typ, path string) error {
	switch normalizeType(typ) {
	case "", "none", "disabled", "memory":
		return nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("bbolt storage requires a path")
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage type %q", typ)
	}
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	if err := Check(typ, path); err != nil {
		return nil, err
	}
	if normalizeType(typ) == "bbolt" {
		return openBolt(path)
	}
	return NewMemoryStore(), nil
}

func normalizeType(typ string) string {
	return strings.TrimSpace(strings.ToLower(typ))
}

// memoryStore keeps values for the life of the process.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *memoryStore) Put(key string, value []byte) error {
	m.mu.Lock()
	m.values[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}
