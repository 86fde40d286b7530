package rules

// LegalMoves returns every legal move of the piece on sq. The result is
// empty when sq is empty or holds a piece of the side not to move.
func LegalMoves(s *GameState, sq Square) ([]Move, error) {
	if err := checkSquare(sq); err != nil {
		return nil, err
	}
	p := s.Board.At(sq)
	if p.Empty() || p.Color != s.SideToMove {
		return nil, nil
	}
	return legalFrom(s, sq, p), nil
}

// AllLegalMoves returns the legal moves of the side to move, ordered by
// origin square from a1 to h8.
func AllLegalMoves(s *GameState) []Move {
	var out []Move
	for _, from := range s.Board.Squares(s.SideToMove) {
		out = append(out, legalFrom(s, from, s.Board.At(from))...)
	}
	return out
}

// IsSquareAttacked reports whether any piece of by attacks sq.
func IsSquareAttacked(s *GameState, sq Square, by Color) (bool, error) {
	if err := checkSquare(sq); err != nil {
		return false, err
	}
	return squareAttacked(s, sq, by), nil
}

// InCheck reports whether the side to move has its king attacked.
func InCheck(s *GameState) bool {
	king, ok := s.Board.KingSquare(s.SideToMove)
	if !ok {
		return false
	}
	return squareAttacked(s, king, s.SideToMove.Opposite())
}

func legalFrom(s *GameState, from Square, p Piece) []Move {
	var out []Move
	pseudoMoves(s, from, p, func(m Move) bool {
		if !exposesKing(s, m, p.Color) {
			out = append(out, m)
		}
		return true
	})
	return out
}

func hasLegalMove(s *GameState) bool {
	found := false
	for _, from := range s.Board.Squares(s.SideToMove) {
		pseudoMoves(s, from, s.Board.At(from), func(m Move) bool {
			if !exposesKing(s, m, s.SideToMove) {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

// exposesKing plays m on a scratch board and reports whether color's king
// is attacked afterwards.
func exposesKing(s *GameState, m Move, color Color) bool {
	probe := GameState{Board: s.Board}
	movePieces(&probe.Board, m)
	king, ok := probe.Board.KingSquare(color)
	if !ok {
		return false
	}
	return squareAttacked(&probe, king, color.Opposite())
}
