package rules

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppp1ppp/8/8/4pP2/8/PPPPP1PP/RNBQKBNR b KQkq f3 0 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/8/8/4K3 b - - 57 120",
	}
	for _, fen := range fens {
		if got := mustFEN(t, fen).FEN(); got != fen {
			t.Errorf("FEN round trip:\n got %q\nwant %q", got, fen)
		}
	}
}

func TestParseFENDefaultsClocks(t *testing.T) {
	s := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w -")
	if s.HalfmoveClock != 0 || s.FullmoveNumber != 1 {
		t.Fatalf("clocks = %d/%d, want 0/1", s.HalfmoveClock, s.FullmoveNumber)
	}
	if got, want := s.FEN(), "4k3/8/8/8/8/8/8/4K3 w - - 0 1"; got != want {
		t.Fatalf("FEN() = %q, want %q", got, want)
	}
}

func TestParseFENInfersMoved(t *testing.T) {
	s := mustFEN(t, "r3k2r/8/8/8/8/8/4P3/R3K2R w Kq - 0 1")
	tests := []struct {
		sq   string
		want bool
	}{
		{"a1", true},
		{"h1", false},
		{"e1", false},
		{"a8", false},
		{"h8", true},
		{"e8", false},
		{"e2", false},
	}
	for _, tt := range tests {
		if got := s.Board.At(mustSquare(t, tt.sq)).HasMoved; got != tt.want {
			t.Errorf("%s HasMoved = %v, want %v", tt.sq, got, tt.want)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few fields", "8/8/8/8/8/8/8/8 w"},
		{"too many fields", InitialFEN + " extra"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank overflow", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1"},
		{"no black king", "8/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"bad castling", "4k3/8/8/8/8/8/8/4K3 w KX - 0 1"},
		{"en passant off rank", "4k3/8/8/8/8/8/8/4K3 w - e4 0 1"},
		{"negative halfmove", "4k3/8/8/8/8/8/8/4K3 w - - -1 1"},
		{"zero fullmove", "4k3/8/8/8/8/8/8/4K3 w - - 0 0"},
		{"idle king in check", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1"},
		{"idle king in check by pawn", "8/8/8/8/8/3k4/4P3/4K3 w - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}
