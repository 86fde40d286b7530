package session

import (
	"context"
	"sort"
	"sync"
)

type memEntry struct {
	mu   sync.Mutex
	game *Game
}

// MemoryStore keeps games in process. Updates to one game are serialized
// by that game's mutex; different games never block each other.
type MemoryStore struct {
	mu     sync.RWMutex
	games  map[string]*memEntry
	byUser map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:  make(map[string]*memEntry),
		byUser: make(map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) Create(_ context.Context, g *Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[g.ID]; ok {
		return ErrGameExists
	}
	s.games[g.ID] = &memEntry{game: g.clone()}
	for _, id := range []string{g.WhiteID, g.BlackID} {
		set, ok := s.byUser[id]
		if !ok {
			set = make(map[string]struct{})
			s.byUser[id] = set
		}
		set[g.ID] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) entry(id string) (*memEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return e, nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Game, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Game, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cur := e.game.clone()
	if err := fn(cur); err != nil {
		return nil, err
	}
	e.game = cur
	return cur.clone(), nil
}

func (s *MemoryStore) GamesByUser(ctx context.Context, userID string) ([]*Game, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.byUser[userID]))
	for id := range s.byUser[userID] {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	out := make([]*Game, 0, len(ids))
	for _, id := range ids {
		g, err := s.Load(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, g)
	}
	sortByRecent(out)
	return out, nil
}

func sortByRecent(games []*Game) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].UpdatedAt.Equal(games[j].UpdatedAt) {
			return games[i].UpdatedAt.After(games[j].UpdatedAt)
		}
		return games[i].ID > games[j].ID
	})
}
