package store

import (
	"context"
	"sort"
	"sync"

	"github.com/inudochi/gameshelf/internal/domain"
)

// memstore is a development-only store used when nothing should touch disk.
type memstore struct {
	mu    sync.RWMutex
	games map[int64]domain.Game
}

func NewMemoryStore() Store {
	return &memstore{games: make(map[int64]domain.Game)}
}

func (m *memstore) GetAll(ctx context.Context) ([]domain.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memstore) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	out := g.Clone()
	return &out, nil
}

func (m *memstore) Add(ctx context.Context, game domain.Game) (domain.Game, error) {
	stored := game.Clone().WithDefaults()
	if err := checkWritable(KindMemory, "add", stored); err != nil {
		return domain.Game{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var top int64
	for id := range m.games {
		if id > top {
			top = id
		}
	}
	stored.ID = top + 1
	m.games[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *memstore) Update(ctx context.Context, game domain.Game) error {
	if err := checkWritable(KindMemory, "update", game); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[game.ID]; !ok {
		return notFound(game.ID)
	}
	m.games[game.ID] = game.Clone()
	return nil
}

func (m *memstore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return notFound(id)
	}
	delete(m.games, id)
	return nil
}

func (m *memstore) Close() error { return nil }
