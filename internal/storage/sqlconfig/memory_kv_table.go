package sqlconfig

import (
	"context"
	"sync"
)

var _ IKVTable = (*MemoryKVTable)(nil)

// MemoryKVTable keeps everything in process memory. Used for local runs and tests.
type MemoryKVTable struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryKVTable() *MemoryKVTable {
	return &MemoryKVTable{items: make(map[string]string)}
}

func (t *MemoryKVTable) Get(_ context.Context, key string) (string, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	value, ok := t.items[key]
	return value, ok, nil
}

func (t *MemoryKVTable) Set(_ context.Context, key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[key] = value
	return nil
}

func (t *MemoryKVTable) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.items, key)
	return nil
}
