package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialFEN is the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenKinds = map[byte]Kind{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// ParseFEN builds a state from Forsyth-Edwards Notation. The halfmove and
// fullmove fields may be omitted. Piece HasMoved flags are inferred: pawns
// off their start rank, and kings or corner rooks without a matching
// castling right, count as moved. A position where the side not to move
// is in check is rejected.
func ParseFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("expected 4 to 6 fields, got %d: %w", len(fields), ErrInvalidFEN)
	}

	s := &GameState{FullmoveNumber: 1}
	if err := parsePlacement(&s.Board, fields[0]); err != nil {
		return nil, err
	}
	for _, c := range []Color{White, Black} {
		if n := s.Board.CountKings(c); n != 1 {
			return nil, fmt.Errorf("%s has %d kings: %w", c, n, ErrInvalidFEN)
		}
	}

	switch fields[1] {
	case "w":
		s.SideToMove = White
	case "b":
		s.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move %q: %w", fields[1], ErrInvalidFEN)
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				s.Castling.WhiteKingside = true
			case 'Q':
				s.Castling.WhiteQueenside = true
			case 'k':
				s.Castling.BlackKingside = true
			case 'q':
				s.Castling.BlackQueenside = true
			default:
				return nil, fmt.Errorf("invalid castling field %q: %w", fields[2], ErrInvalidFEN)
			}
		}
	}

	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil || (ep.Rank != 2 && ep.Rank != 5) {
			return nil, fmt.Errorf("invalid en passant square %q: %w", fields[3], ErrInvalidFEN)
		}
		s.EnPassant = &ep
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid halfmove clock %q: %w", fields[4], ErrInvalidFEN)
		}
		s.HalfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid fullmove number %q: %w", fields[5], ErrInvalidFEN)
		}
		s.FullmoveNumber = n
	}

	inferMoved(s)
	idle := s.SideToMove.Opposite()
	if king, ok := s.Board.KingSquare(idle); ok && squareAttacked(s, king, s.SideToMove) {
		return nil, fmt.Errorf("%s is in check with %s to move: %w", idle, s.SideToMove, ErrInvalidFEN)
	}
	return s, nil
}

func parsePlacement(b *Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d: %w", len(rows), ErrInvalidFEN)
	}
	for i, row := range rows {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			lower := c | 0x20
			kind, ok := fenKinds[lower]
			if !ok {
				return fmt.Errorf("invalid piece character %q: %w", c, ErrInvalidFEN)
			}
			if file > 7 {
				return fmt.Errorf("rank %d overflows: %w", rank+1, ErrInvalidFEN)
			}
			color := White
			if c == lower {
				color = Black
			}
			b.set(Sq(file, rank), Piece{Kind: kind, Color: color})
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, ErrInvalidFEN)
		}
	}
	return nil
}

func inferMoved(s *GameState) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := &s.Board[r][f]
			sq := Sq(f, r)
			switch p.Kind {
			case Pawn:
				p.HasMoved = r != p.Color.homeRank()+p.Color.forward()
			case King:
				home := sq == Sq(4, p.Color.homeRank())
				p.HasMoved = !home || !(s.Castling.kingside(p.Color) || s.Castling.queenside(p.Color))
			case Rook:
				switch {
				case sq == Sq(7, p.Color.homeRank()):
					p.HasMoved = !s.Castling.kingside(p.Color)
				case sq == Sq(0, p.Color.homeRank()):
					p.HasMoved = !s.Castling.queenside(p.Color)
				default:
					p.HasMoved = true
				}
			}
		}
	}
}

// FEN encodes s in Forsyth-Edwards Notation.
func (s *GameState) FEN() string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := s.Board[r][f]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(p.FENLetter())
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if s.SideToMove == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	rights := ""
	if s.Castling.WhiteKingside {
		rights += "K"
	}
	if s.Castling.WhiteQueenside {
		rights += "Q"
	}
	if s.Castling.BlackKingside {
		rights += "k"
	}
	if s.Castling.BlackQueenside {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	b.WriteString(rights)

	b.WriteByte(' ')
	if s.EnPassant != nil {
		b.WriteString(s.EnPassant.String())
	} else {
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, " %d %d", s.HalfmoveClock, s.FullmoveNumber)
	return b.String()
}

// FENLetter is the piece's FEN letter: uppercase for white, lowercase for
// black. It is only meaningful for non-empty pieces.
func (p Piece) FENLetter() byte {
	l := p.Kind.Letter()
	if p.Color == Black {
		l |= 0x20
	}
	return l
}
