package archive

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepository is an in-process Repository used when no database is
// configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Result
	byUser map[string]map[string]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*Result),
		byUser: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryRepository) SaveResult(_ context.Context, r *Result) error {
	if r == nil || strings.TrimSpace(r.GameID) == "" {
		return nil
	}
	stored := r.clone()
	prepare(stored)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[stored.GameID] = stored
	for _, id := range []string{stored.WhiteID, stored.BlackID} {
		if id == "" {
			continue
		}
		set, ok := m.byUser[id]
		if !ok {
			set = make(map[string]struct{})
			m.byUser[id] = set
		}
		set[stored.GameID] = struct{}{}
	}
	return nil
}

// RecentGames returns the player's results, most recently ended first.
func (m *MemoryRepository) RecentGames(_ context.Context, playerID string, limit int) ([]*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]*Result, 0, len(m.byUser[playerID]))
	for id := range m.byUser[playerID] {
		items = append(items, m.byID[id].clone())
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].GameID > items[j].GameID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *MemoryRepository) Game(_ context.Context, id string) (*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.clone(), nil
}
