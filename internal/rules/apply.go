package rules

import "fmt"

// ApplyMove validates m against the legal moves of its origin square and
// returns the resulting state. s is never modified.
//
// Only From, To and Promotion of m are compared; the flag of the matching
// generated move is authoritative. A promoting move without a promotion
// kind promotes to a queen.
func ApplyMove(s *GameState, m Move) (*GameState, error) {
	if err := checkSquare(m.From); err != nil {
		return nil, err
	}
	if err := checkSquare(m.To); err != nil {
		return nil, err
	}
	if st := Status(s); st.Terminal() {
		return nil, &GameOverError{Status: st}
	}
	legal, err := LegalMoves(s, m.From)
	if err != nil {
		return nil, err
	}
	chosen, ok := matchMove(legal, m)
	if !ok {
		return nil, &IllegalMoveError{Move: m}
	}
	return play(s, chosen), nil
}

func matchMove(legal []Move, m Move) (Move, bool) {
	for _, c := range legal {
		if c.From != m.From || c.To != m.To {
			continue
		}
		if c.Promotion == m.Promotion || (m.Promotion == NoKind && c.Promotion == Queen) {
			return c, true
		}
	}
	return Move{}, false
}

// play applies a move already known to be legal in s.
func play(s *GameState, m Move) *GameState {
	next := s.Clone()
	p := s.Board.At(m.From)
	capture := !s.Board.At(m.To).Empty() || m.Flag == EnPassant

	movePieces(&next.Board, m)

	if p.Kind == King {
		next.Castling.revoke(p.Color, true, true)
	}
	next.Castling.revokeCorner(m.From)
	next.Castling.revokeCorner(m.To)

	next.EnPassant = nil
	if m.Flag == DoublePawnPush {
		ep := m.From.offset(0, p.Color.forward())
		next.EnPassant = &ep
	}

	if p.Kind == Pawn || capture {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if p.Color == Black {
		next.FullmoveNumber++
	}
	next.History = append(next.History, m)
	next.SideToMove = p.Color.Opposite()
	return next
}

// movePieces relocates the pieces touched by m, including the castling rook
// and the pawn taken en passant.
func movePieces(b *Board, m Move) {
	p := b.At(m.From)
	b.clear(m.From)

	switch m.Flag {
	case EnPassant:
		b.clear(Sq(m.To.File, m.From.Rank))
	case CastleKingside:
		moveRook(b, Sq(7, m.From.Rank), Sq(5, m.From.Rank))
	case CastleQueenside:
		moveRook(b, Sq(0, m.From.Rank), Sq(3, m.From.Rank))
	}

	if m.Promotion != NoKind {
		p.Kind = m.Promotion
	}
	p.HasMoved = true
	b.set(m.To, p)
}

func moveRook(b *Board, from, to Square) {
	rook := b.At(from)
	b.clear(from)
	rook.HasMoved = true
	b.set(to, rook)
}

// Replay applies moves in order from the standard starting position.
func Replay(moves []Move) (*GameState, error) {
	return ReplayFrom(NewGame(), moves)
}

// ReplayFrom applies moves in order from start.
func ReplayFrom(start *GameState, moves []Move) (*GameState, error) {
	s := start
	for i, m := range moves {
		next, err := ApplyMove(s, m)
		if err != nil {
			return nil, fmt.Errorf("replay ply %d (%s): %w", i+1, m, err)
		}
		s = next
	}
	return s, nil
}
