package rules

import (
	"fmt"
	"strings"
)

var promotionLetters = map[byte]Kind{'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight}

// ParseMove parses UCI long algebraic text such as "e2e4" or "e7e8q". The
// flag is left Normal; ApplyMove takes it from the generated move.
func ParseMove(text string) (Move, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	if len(t) != 4 && len(t) != 5 {
		return Move{}, fmt.Errorf("move %q: %w", text, ErrInvalidNotation)
	}
	from, err := ParseSquare(t[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(t[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(t) == 5 {
		kind, ok := promotionLetters[t[4]]
		if !ok {
			return Move{}, fmt.Errorf("move %q: bad promotion: %w", text, ErrInvalidNotation)
		}
		m.Promotion = kind
	}
	return m, nil
}

// SAN renders a move that is legal in s in standard algebraic notation,
// including the check or mate suffix.
func SAN(s *GameState, m Move) string {
	var b strings.Builder
	p := s.Board.At(m.From)

	switch m.Flag {
	case CastleKingside:
		b.WriteString("O-O")
	case CastleQueenside:
		b.WriteString("O-O-O")
	default:
		capture := !s.Board.At(m.To).Empty() || m.Flag == EnPassant
		if p.Kind == Pawn {
			if capture {
				b.WriteByte(byte('a' + m.From.File))
			}
		} else {
			b.WriteByte(p.Kind.Letter())
			b.WriteString(disambiguate(s, m, p))
		}
		if capture {
			b.WriteByte('x')
		}
		b.WriteString(m.To.String())
		if m.Promotion != NoKind {
			b.WriteByte('=')
			b.WriteByte(m.Promotion.Letter())
		}
	}

	next := play(s, m)
	if InCheck(next) {
		if hasLegalMove(next) {
			b.WriteByte('+')
		} else {
			b.WriteByte('#')
		}
	}
	return b.String()
}

// disambiguate returns the file, rank or full square needed to tell m apart
// from moves of other same-kind pieces to the same target.
func disambiguate(s *GameState, m Move, p Piece) string {
	var rivals []Square
	for _, sq := range s.Board.Squares(p.Color) {
		if sq == m.From {
			continue
		}
		q := s.Board.At(sq)
		if q.Kind != p.Kind {
			continue
		}
		for _, c := range legalFrom(s, sq, q) {
			if c.To == m.To {
				rivals = append(rivals, sq)
				break
			}
		}
	}
	if len(rivals) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, r := range rivals {
		sameFile = sameFile || r.File == m.From.File
		sameRank = sameRank || r.Rank == m.From.Rank
	}
	switch {
	case !sameFile:
		return string(rune('a' + m.From.File))
	case !sameRank:
		return string(rune('1' + m.From.Rank))
	default:
		return m.From.String()
	}
}

// ParseSAN resolves standard algebraic text against the legal moves of s.
// Check markers and annotation glyphs are ignored, and "0-0" is accepted
// for castling.
func ParseSAN(s *GameState, text string) (Move, error) {
	want := normalizeSAN(text)
	if want == "" {
		return Move{}, fmt.Errorf("san %q: %w", text, ErrInvalidNotation)
	}
	for _, m := range AllLegalMoves(s) {
		if normalizeSAN(SAN(s, m)) == want {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("san %q: %w", text, ErrIllegalMove)
}

func normalizeSAN(text string) string {
	t := strings.TrimSpace(text)
	t = strings.TrimRight(t, "+#!?")
	t = strings.ReplaceAll(t, "0", "O")
	t = strings.ReplaceAll(t, "=", "")
	return t
}

// ParseAny accepts UCI text first and falls back to SAN.
func ParseAny(s *GameState, text string) (Move, error) {
	if m, err := ParseMove(text); err == nil {
		return m, nil
	}
	return ParseSAN(s, text)
}
