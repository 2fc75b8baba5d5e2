package presence

import (
	"context"
	"sync"
)

// MemoryStore keeps players in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]Player
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{players: make(map[string]Player)}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Put(_ context.Context, p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, id)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return Player{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Player, error) {
	m.mu.RLock()
	players := make([]Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	m.mu.RUnlock()

	sortPlayers(players)
	return players, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
