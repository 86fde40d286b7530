package rules

import (
	"math/rand"
	"sort"
	"testing"

	nchess "github.com/corentings/chess/v2"
	"github.com/google/go-cmp/cmp"
)

// oracleMoves lists the legal moves an independent implementation finds for fen.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := nchess.FEN(fen)
	if err != nil {
		t.Fatalf("oracle rejected FEN %q: %v", fen, err)
	}
	game := nchess.NewGame(opt)
	var out []string
	for _, m := range game.ValidMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

func TestLegalMovesMatchOracle(t *testing.T) {
	fixed := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fixed {
		s := mustFEN(t, fen)
		if diff := cmp.Diff(oracleMoves(t, fen), uciList(AllLegalMoves(s))); diff != "" {
			t.Fatalf("legal moves in %s (-oracle +ours):\n%s", fen, diff)
		}
	}

	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 10; game++ {
		s := NewGame()
		for ply := 0; ply < 120 && !Status(s).Terminal(); ply++ {
			fen := s.FEN()
			moves := AllLegalMoves(s)
			if diff := cmp.Diff(oracleMoves(t, fen), uciList(moves)); diff != "" {
				t.Fatalf("game %d ply %d in %s (-oracle +ours):\n%s", game, ply, fen, diff)
			}
			s = play(s, moves[rng.Intn(len(moves))])
		}
	}
}
