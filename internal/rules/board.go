package rules

// Board holds the 64 squares indexed [rank][file].
type Board [8][8]Piece

// At returns the piece on sq. Off-board squares read as empty.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b[sq.Rank][sq.File]
}

func (b *Board) set(sq Square, p Piece) { b[sq.Rank][sq.File] = p }

func (b *Board) clear(sq Square) { b[sq.Rank][sq.File] = Piece{} }

// KingSquare returns the square of color's king.
func (b *Board) KingSquare(color Color) (Square, bool) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b[r][f]; p.Kind == King && p.Color == color {
				return Sq(f, r), true
			}
		}
	}
	return Square{}, false
}

// Squares returns the squares occupied by color, rank by rank from a1.
func (b *Board) Squares(color Color) []Square {
	out := make([]Square, 0, 16)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b[r][f]; !p.Empty() && p.Color == color {
				out = append(out, Sq(f, r))
			}
		}
	}
	return out
}

// CountKings returns how many kings of color are on the board.
func (b *Board) CountKings(color Color) int {
	n := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b[r][f]; p.Kind == King && p.Color == color {
				n++
			}
		}
	}
	return n
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewGame returns the standard starting position with white to move.
func NewGame() *GameState {
	s := &GameState{
		SideToMove:     White,
		Castling:       Castling{WhiteKingside: true, WhiteQueenside: true, BlackKingside: true, BlackQueenside: true},
		FullmoveNumber: 1,
	}
	for f := 0; f < 8; f++ {
		s.Board[0][f] = Piece{Kind: backRank[f], Color: White}
		s.Board[1][f] = Piece{Kind: Pawn, Color: White}
		s.Board[6][f] = Piece{Kind: Pawn, Color: Black}
		s.Board[7][f] = Piece{Kind: backRank[f], Color: Black}
	}
	return s
}
