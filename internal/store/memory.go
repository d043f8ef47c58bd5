package store

import (
	"context"
	"sync"

	"github.com/lox/streetbook/internal/engine"
)

// MemoryStore holds the snapshot in memory. Used by the server's
// ephemeral sessions and by tests.
type MemoryStore struct {
	mu    sync.Mutex
	state *engine.GameState
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*engine.GameState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, false, nil
	}
	return m.state.Clone(), true, nil
}

func (m *MemoryStore) Save(ctx context.Context, state *engine.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
