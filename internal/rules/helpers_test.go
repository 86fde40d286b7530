package rules

import (
	"sort"
	"testing"
)

func mustFEN(t *testing.T, fen string) *GameState {
	t.Helper()
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return s
}

func mustSquare(t *testing.T, text string) Square {
	t.Helper()
	sq, err := ParseSquare(text)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", text, err)
	}
	return sq
}

// mustPlay applies UCI moves in order and fails the test on the first error.
func mustPlay(t *testing.T, s *GameState, moves ...string) *GameState {
	t.Helper()
	for _, text := range moves {
		m, err := ParseMove(text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", text, err)
		}
		next, err := ApplyMove(s, m)
		if err != nil {
			t.Fatalf("ApplyMove(%s) in %s: %v", text, s.FEN(), err)
		}
		s = next
	}
	return s
}

func uciList(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func hasMove(moves []Move, uci string) bool {
	for _, m := range moves {
		if m.String() == uci {
			return true
		}
	}
	return false
}

func perft(s *GameState, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := AllLegalMoves(s)
	if depth == 1 {
		return len(moves)
	}
	n := 0
	for _, m := range moves {
		n += perft(play(s, m), depth-1)
	}
	return n
}
