// Package archive stores the results of finished games.
package archive

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no archived result matches.
var ErrNotFound = errors.New("archived game not found")

// Result tokens.
const (
	ResultWhite = "white"
	ResultBlack = "black"
	ResultDraw  = "draw"
)

// Result is the final record of one game.
type Result struct {
	GameID    string
	WhiteID   string
	WhiteName string
	BlackID   string
	BlackName string
	Result    string
	Method    string
	StartFEN  string
	MovesUCI  []string
	MovesSAN  []string
	PGN       string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}

// Repository persists finished-game results. SaveResult is an upsert keyed
// by GameID.
type Repository interface {
	SaveResult(ctx context.Context, r *Result) error
	RecentGames(ctx context.Context, playerID string, limit int) ([]*Result, error)
	Game(ctx context.Context, id string) (*Result, error)
}

// prepare fills derived fields before a result is stored.
func prepare(r *Result) {
	if r.Duration == 0 && !r.StartedAt.IsZero() && !r.EndedAt.IsZero() {
		r.Duration = r.EndedAt.Sub(r.StartedAt)
	}
	if r.Duration < 0 {
		r.Duration = 0
	}
	if r.PGN == "" {
		r.PGN = BuildPGN(r)
	}
}

func (r *Result) clone() *Result {
	c := *r
	c.MovesUCI = append([]string(nil), r.MovesUCI...)
	c.MovesSAN = append([]string(nil), r.MovesSAN...)
	return &c
}
