package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps stores in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	stores map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{stores: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(_ context.Context, name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.stores[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Write(_ context.Context, name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stores[name] = append([]byte(nil), data...)
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
