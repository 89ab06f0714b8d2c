package memory

import (
	"context"
	"sync"

	"github.com/shariq818/latencymon/internal/domain"
	"github.com/shariq818/latencymon/internal/repo"
)

var _ repo.RunStore = (*Store)(nil)

// Store holds runs in memory. History disappears on restart; use the
// Postgres store when that matters.
type Store struct {
	mu    sync.RWMutex
	runs  map[string]*domain.Run
	order []string // insertion order, oldest first
}

func New() *Store {
	return &Store{
		runs:  make(map[string]*domain.Run, 16),
		order: make([]string, 0, 16),
	}
}

func (m *Store) Save(ctx context.Context, r *domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[r.ID]; !exists {
		m.order = append(m.order, r.ID)
	}
	m.runs[r.ID] = r
	return nil
}

func (m *Store) Get(ctx context.Context, id string) (*domain.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r, nil
}

func (m *Store) List(ctx context.Context) ([]repo.RunRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]repo.RunRow, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		r := m.runs[m.order[i]]
		out = append(out, repo.RunRow{
			ID:        r.ID,
			StartedAt: r.StartedAt,
			Targets:   len(r.Summaries),
		})
	}
	return out, nil
}
