package session

import (
	"context"

	"github.com/park285/chess-rules/internal/rules"
	"github.com/park285/chess-rules/pkg/chessdto"
)

var pieceValues = map[rules.Kind]int{
	rules.Pawn:   1,
	rules.Knight: 3,
	rules.Bishop: 3,
	rules.Rook:   5,
	rules.Queen:  9,
}

// Snapshot returns the presentation view of a game.
func (m *Manager) Snapshot(ctx context.Context, id string) (*chessdto.Snapshot, error) {
	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(g)
}

// BuildSnapshot replays g and renders it as a Snapshot.
func BuildSnapshot(g *Game) (*chessdto.Snapshot, error) {
	var captured chessdto.CapturedPieces
	state, err := rebuild(g, func(before *rules.GameState, mv rules.Move) {
		victim := before.Board.At(mv.To)
		if mv.Flag == rules.EnPassant {
			victim = before.Board.At(rules.Sq(mv.To.File, mv.From.Rank))
		}
		if victim.Empty() {
			return
		}
		letter := string(victim.FENLetter())
		if before.SideToMove == rules.White {
			captured.White = append(captured.White, letter)
		} else {
			captured.Black = append(captured.Black, letter)
		}
	})
	if err != nil {
		return nil, err
	}

	snap := &chessdto.Snapshot{
		GameID:     g.ID,
		WhiteID:    g.WhiteID,
		WhiteName:  g.WhiteName,
		BlackID:    g.BlackID,
		BlackName:  g.BlackName,
		FEN:        state.FEN(),
		Turn:       string(g.Turn),
		Status:     string(g.Status),
		InCheck:    g.InCheck,
		Winner:     g.Winner,
		Outcome:    g.Outcome,
		DrawReason: g.DrawReason,
		MovesUCI:   append([]string(nil), g.MovesUCI...),
		MovesSAN:   append([]string(nil), g.MovesSAN...),
		MoveCount:  len(g.MovesUCI),
		Captured:   captured,
		UpdatedAt:  g.UpdatedAt,
	}
	if n := len(g.MovesUCI); n > 0 {
		snap.LastMove = g.MovesUCI[n-1]
	}
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			p := state.Board.At(rules.Sq(file, 7-row))
			if p.Empty() {
				continue
			}
			snap.Board[row][file] = string(p.FENLetter())
			if p.Color == rules.White {
				snap.Material.White += pieceValues[p.Kind]
			} else {
				snap.Material.Black += pieceValues[p.Kind]
			}
		}
	}
	return snap, nil
}
