package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

type storeFactory func(t *testing.T) Store

func newTestRedis(t *testing.T, opts ...RedisOption) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	s, err := NewRedisStore(context.Background(), fmt.Sprintf("redis://%s/0", mr.Addr()), opts...)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"redis": func(t *testing.T) Store {
			s, _ := newTestRedis(t, WithMaxRetries(1000))
			return s
		},
	}
}

func testGame(id string, updated time.Time) *Game {
	return &Game{
		ID:        id,
		StartFEN:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		MovesUCI:  []string{},
		MovesSAN:  []string{},
		Turn:      White,
		Status:    StatusActive,
		WhiteID:   "alice",
		BlackID:   "bob",
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

func TestStoreContract(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t)
			base := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

			if err := s.Create(ctx, testGame("g1", base)); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := s.Create(ctx, testGame("g1", base)); !errors.Is(err, ErrGameExists) {
				t.Fatalf("duplicate Create error = %v, want ErrGameExists", err)
			}
			if _, err := s.Load(ctx, "nope"); !errors.Is(err, ErrGameNotFound) {
				t.Fatalf("Load(nope) error = %v, want ErrGameNotFound", err)
			}
			if _, err := s.Update(ctx, "nope", func(*Game) error { return nil }); !errors.Is(err, ErrGameNotFound) {
				t.Fatalf("Update(nope) error = %v, want ErrGameNotFound", err)
			}

			boom := errors.New("boom")
			if _, err := s.Update(ctx, "g1", func(g *Game) error {
				g.MovesUCI = append(g.MovesUCI, "e2e4")
				return boom
			}); !errors.Is(err, boom) {
				t.Fatalf("Update error = %v, want boom", err)
			}
			g, err := s.Load(ctx, "g1")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(g.MovesUCI) != 0 {
				t.Fatalf("aborted update was stored: %v", g.MovesUCI)
			}

			updated, err := s.Update(ctx, "g1", func(g *Game) error {
				g.MovesUCI = append(g.MovesUCI, "e2e4")
				g.UpdatedAt = base.Add(time.Hour)
				return nil
			})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if len(updated.MovesUCI) != 1 {
				t.Fatalf("Update returned %v", updated.MovesUCI)
			}

			if err := s.Create(ctx, testGame("g2", base.Add(time.Minute))); err != nil {
				t.Fatalf("Create g2: %v", err)
			}
			games, err := s.GamesByUser(ctx, "bob")
			if err != nil {
				t.Fatalf("GamesByUser: %v", err)
			}
			if len(games) != 2 || games[0].ID != "g1" || games[1].ID != "g2" {
				t.Fatalf("GamesByUser order wrong: %d games", len(games))
			}
			if none, _ := s.GamesByUser(ctx, "carol"); len(none) != 0 {
				t.Fatalf("GamesByUser(carol) = %d games, want 0", len(none))
			}
		})
	}
}

func TestStoreUpdateIsExclusive(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t)
			if err := s.Create(ctx, testGame("g", time.Now())); err != nil {
				t.Fatalf("Create: %v", err)
			}

			const workers = 8
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := s.Update(ctx, "g", func(g *Game) error {
						g.MovesUCI = append(g.MovesUCI, fmt.Sprintf("w%d", i))
						return nil
					})
					if err != nil && !errors.Is(err, ErrConcurrentUpdate) {
						t.Errorf("Update: %v", err)
						return
					}
					if err == nil {
						mu.Lock()
						succeeded++
						mu.Unlock()
					}
				}(i)
			}
			wg.Wait()

			g, err := s.Load(ctx, "g")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(g.MovesUCI) != succeeded {
				t.Fatalf("stored %d appends for %d successful updates", len(g.MovesUCI), succeeded)
			}
			if succeeded == 0 {
				t.Fatalf("no update succeeded")
			}
		})
	}
}

func TestRedisStoreKeysAndTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedis(t, WithTTL(2*time.Hour))
	if err := s.Create(ctx, testGame("g1", time.Now())); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !mr.Exists("game:g1") {
		t.Fatalf("game key missing; keys=%v", mr.Keys())
	}
	if ttl := mr.TTL("game:g1"); ttl != 2*time.Hour {
		t.Fatalf("game TTL = %s, want 2h", ttl)
	}
	members, err := mr.Members("game:index:user:alice")
	if err != nil || len(members) != 1 || members[0] != "g1" {
		t.Fatalf("alice index = %v, %v", members, err)
	}

	mr.Del("game:g1")
	games, err := s.GamesByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GamesByUser: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expired game still listed")
	}
	if members, _ := mr.Members("game:index:user:alice"); len(members) != 0 {
		t.Fatalf("stale index entry kept: %v", members)
	}
}

func TestRedisStoreGivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedis(t, WithMaxRetries(3))
	if err := s.Create(ctx, testGame("g", time.Now())); err != nil {
		t.Fatalf("Create: %v", err)
	}
	calls := 0
	_, err := s.Update(ctx, "g", func(g *Game) error {
		calls++
		// Touch the watched key so EXEC aborts.
		raw, _ := mr.Get("game:g")
		_ = mr.Set("game:g", raw)
		return nil
	})
	if !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("Update error = %v, want ErrConcurrentUpdate", err)
	}
	if calls != 3 {
		t.Fatalf("fn called %d times, want 3", calls)
	}
}

func TestNewRedisStoreRejectsBadURL(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), ""); err == nil {
		t.Fatalf("empty URL accepted")
	}
	if _, err := NewRedisStore(context.Background(), "http://localhost:6379"); err == nil {
		t.Fatalf("http scheme accepted")
	}
}

func TestRedisStoreCreateWritesGameAndIndexTogether(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedis(t, WithTTL(2*time.Hour))
	if err := s.Create(ctx, testGame("g1", time.Now())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := testGame("g1", time.Now())
	dup.WhiteID, dup.BlackID = "carol", "dave"
	if err := s.Create(ctx, dup); !errors.Is(err, ErrGameExists) {
		t.Fatalf("duplicate Create error = %v, want ErrGameExists", err)
	}
	if mr.Exists("game:index:user:carol") || mr.Exists("game:index:user:dave") {
		t.Fatalf("rejected Create touched the index: keys=%v", mr.Keys())
	}

	mr.SetError("LOADING server is loading")
	if err := s.Create(ctx, testGame("g2", time.Now())); err == nil {
		t.Fatalf("Create succeeded while the server was failing")
	}
	mr.SetError("")
	if mr.Exists("game:g2") {
		t.Fatalf("game written without its index")
	}
	if members, _ := mr.Members("game:index:user:alice"); len(members) != 1 {
		t.Fatalf("alice index = %v, want only g1", members)
	}

	if err := s.Create(ctx, testGame("g2", time.Now())); err != nil {
		t.Fatalf("Create g2: %v", err)
	}
	for _, key := range []string{"game:g2", "game:index:user:alice", "game:index:user:bob"} {
		if ttl := mr.TTL(key); ttl != 2*time.Hour {
			t.Fatalf("%s TTL = %s, want 2h", key, ttl)
		}
	}
	games, err := s.GamesByUser(ctx, "bob")
	if err != nil || len(games) != 2 {
		t.Fatalf("GamesByUser(bob) = %d games, %v", len(games), err)
	}
}
