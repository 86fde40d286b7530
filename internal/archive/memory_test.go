package archive

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"g1", "g2", "g3"} {
		err := repo.SaveResult(ctx, &Result{
			GameID:    id,
			WhiteID:   "alice",
			BlackID:   "bob",
			Result:    ResultDraw,
			MovesSAN:  []string{"e4"},
			StartedAt: base,
			EndedAt:   base.Add(time.Duration(i+1) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveResult(%s): %v", id, err)
		}
	}

	recent, err := repo.RecentGames(ctx, "bob", 2)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(recent) != 2 || recent[0].GameID != "g3" || recent[1].GameID != "g2" {
		t.Fatalf("RecentGames order = %v", ids(recent))
	}
	if recent[0].Duration != 3*time.Minute {
		t.Fatalf("Duration = %s, want 3m", recent[0].Duration)
	}
	if !strings.HasSuffix(recent[0].PGN, "1. e4 1/2-1/2") {
		t.Fatalf("PGN not derived: %q", recent[0].PGN)
	}

	if none, _ := repo.RecentGames(ctx, "carol", 5); len(none) != 0 {
		t.Fatalf("RecentGames(carol) = %v, want none", ids(none))
	}

	g, err := repo.Game(ctx, "g1")
	if err != nil {
		t.Fatalf("Game(g1): %v", err)
	}
	g.MovesSAN[0] = "d4"
	again, _ := repo.Game(ctx, "g1")
	if again.MovesSAN[0] != "e4" {
		t.Fatalf("Game returned shared storage")
	}

	if _, err := repo.Game(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Game(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_ = repo.SaveResult(ctx, &Result{GameID: "g", WhiteID: "a", BlackID: "b", Result: ResultWhite})
	_ = repo.SaveResult(ctx, &Result{GameID: "g", WhiteID: "a", BlackID: "b", Result: ResultBlack})
	got, err := repo.RecentGames(ctx, "a", 0)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(got) != 1 || got[0].Result != ResultBlack {
		t.Fatalf("upsert kept %d rows, result %v", len(got), ids(got))
	}
}

func ids(rs []*Result) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.GameID)
	}
	return out
}
