package store

import (
	"context"
	"sync"
)

// MemoryStore guarda los resultados en memoria; se pierden al reiniciar
type MemoryStore struct {
	mu      sync.RWMutex
	results []RoundResult
}

// NewMemory crea un store vacío
func NewMemory() *MemoryStore {
	return &MemoryStore{results: make([]RoundResult, 0)}
}

// Save implementa ResultStore
func (m *MemoryStore) Save(_ context.Context, result RoundResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, normalize(result))
	return nil
}

// History implementa ResultStore
func (m *MemoryStore) History(_ context.Context, category string, limit int) ([]RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit = clampLimit(limit)
	out := make([]RoundResult, 0, limit)
	for i := len(m.results) - 1; i >= 0 && len(out) < limit; i-- {
		r := m.results[i]
		if category == "" || r.Category == category {
			out = append(out, r)
		}
	}
	return out, nil
}

// Best implementa ResultStore
func (m *MemoryStore) Best(_ context.Context) ([]RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := make(map[string]RoundResult)
	for _, r := range m.results {
		if cur, ok := best[r.Category]; !ok || better(r, cur) {
			best[r.Category] = r
		}
	}
	out := make([]RoundResult, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sortByCategory(out)
	return out, nil
}

// Ping implementa ResultStore
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close implementa ResultStore
func (m *MemoryStore) Close() error { return nil }
