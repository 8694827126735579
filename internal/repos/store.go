package repos

import (
	"context"
	"sync"
)

// Well-known record names inside a visitor scope.
const (
	CartKey    = "cart"
	SessionKey = "user"
	NoticeKey  = "notice"
)

// Store is the per-visitor key/value storage. Each Set replaces the whole
// record; there are no partial writes.
type Store interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}

// MemStore keeps records in process memory. Used by tests and STORE_BACKEND=memory.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemStore() *MemStore { return &MemStore{data: map[string]map[string]string{}} }

func (m *MemStore) Get(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[scope][key]
	return v, ok, nil
}

func (m *MemStore) Set(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[scope] == nil {
		m.data[scope] = map[string]string{}
	}
	m.data[scope][key] = value
	return nil
}

func (m *MemStore) Delete(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[scope], key)
	if len(m.data[scope]) == 0 {
		delete(m.data, scope)
	}
	return nil
}
