package rules

// genMode selects what a generator reports.
type genMode int

const (
	// modeMoves yields pseudo-legal moves.
	modeMoves genMode = iota
	// modeAttacks yields every square the piece attacks: pawn diagonals
	// regardless of occupancy, and the first blocker of each slider ray
	// whatever its colour.
	modeAttacks
)

// generator emits the moves of piece p standing on from. It stops as soon as
// emit returns false and reports whether it ran to completion.
type generator func(s *GameState, from Square, p Piece, mode genMode, emit func(Move) bool) bool

var (
	rookDirs    = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs  = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs   = append(append([][2]int{}, rookDirs...), bishopDirs...)
	knightJumps = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

// generators maps each piece kind to its movement rule. Castling is not a
// king movement rule; pseudoMoves adds it on top.
var generators = [...]generator{
	Pawn:   genPawn,
	Knight: func(s *GameState, from Square, p Piece, mode genMode, emit func(Move) bool) bool { return step(s, from, p, knightJumps, mode, emit) },
	Bishop: func(s *GameState, from Square, p Piece, mode genMode, emit func(Move) bool) bool { return slide(s, from, p, bishopDirs, mode, emit) },
	Rook:   func(s *GameState, from Square, p Piece, mode genMode, emit func(Move) bool) bool { return slide(s, from, p, rookDirs, mode, emit) },
	Queen:  func(s *GameState, from Square, p Piece, mode genMode, emit func(Move) bool) bool { return slide(s, from, p, queenDirs, mode, emit) },
	King:   func(s *GameState, from Square, p Piece, mode genMode, emit func(Move) bool) bool { return step(s, from, p, queenDirs, mode, emit) },
}

func slide(s *GameState, from Square, p Piece, dirs [][2]int, mode genMode, emit func(Move) bool) bool {
	for _, d := range dirs {
		for to := from.offset(d[0], d[1]); to.Valid(); to = to.offset(d[0], d[1]) {
			target := s.Board.At(to)
			if target.Empty() {
				if !emit(Move{From: from, To: to}) {
					return false
				}
				continue
			}
			if mode == modeAttacks || target.Color != p.Color {
				if !emit(Move{From: from, To: to}) {
					return false
				}
			}
			break
		}
	}
	return true
}

func step(s *GameState, from Square, p Piece, offsets [][2]int, mode genMode, emit func(Move) bool) bool {
	for _, d := range offsets {
		to := from.offset(d[0], d[1])
		if !to.Valid() {
			continue
		}
		target := s.Board.At(to)
		if mode == modeMoves && !target.Empty() && target.Color == p.Color {
			continue
		}
		if !emit(Move{From: from, To: to}) {
			return false
		}
	}
	return true
}

func genPawn(s *GameState, from Square, p Piece, mode genMode, emit func(Move) bool) bool {
	dir := p.Color.forward()
	last := p.Color.Opposite().homeRank()

	for _, df := range [2]int{-1, 1} {
		to := from.offset(df, dir)
		if !to.Valid() {
			continue
		}
		if mode == modeAttacks {
			if !emit(Move{From: from, To: to}) {
				return false
			}
			continue
		}
		target := s.Board.At(to)
		switch {
		case !target.Empty() && target.Color != p.Color:
			if !emitPawnMove(from, to, last, emit) {
				return false
			}
		case target.Empty() && s.EnPassant != nil && *s.EnPassant == to:
			victim := s.Board.At(Sq(to.File, from.Rank))
			if victim.Kind == Pawn && victim.Color != p.Color {
				if !emit(Move{From: from, To: to, Flag: EnPassant}) {
					return false
				}
			}
		}
	}
	if mode == modeAttacks {
		return true
	}

	one := from.offset(0, dir)
	if !one.Valid() || !s.Board.At(one).Empty() {
		return true
	}
	if !emitPawnMove(from, one, last, emit) {
		return false
	}
	if from.Rank == p.Color.homeRank()+dir {
		two := one.offset(0, dir)
		if s.Board.At(two).Empty() {
			return emit(Move{From: from, To: two, Flag: DoublePawnPush})
		}
	}
	return true
}

// emitPawnMove expands a move onto the last rank into the four promotions.
func emitPawnMove(from, to Square, last int, emit func(Move) bool) bool {
	if to.Rank != last {
		return emit(Move{From: from, To: to})
	}
	for _, k := range promotionKinds {
		if !emit(Move{From: from, To: to, Promotion: k}) {
			return false
		}
	}
	return true
}

// genCastles emits castling moves for an unmoved king on its home square.
// The king may not start, pass through or land on an attacked square.
func genCastles(s *GameState, from Square, p Piece, emit func(Move) bool) bool {
	home := p.Color.homeRank()
	if p.HasMoved || from != Sq(4, home) {
		return true
	}
	if s.Castling.kingside(p.Color) && canCastle(s, p.Color, 7, []int{5, 6}, []int{4, 5, 6}) {
		if !emit(Move{From: from, To: Sq(6, home), Flag: CastleKingside}) {
			return false
		}
	}
	if s.Castling.queenside(p.Color) && canCastle(s, p.Color, 0, []int{1, 2, 3}, []int{4, 3, 2}) {
		if !emit(Move{From: from, To: Sq(2, home), Flag: CastleQueenside}) {
			return false
		}
	}
	return true
}

func canCastle(s *GameState, color Color, rookFile int, between, kingPath []int) bool {
	home := color.homeRank()
	rook := s.Board.At(Sq(rookFile, home))
	if rook.Kind != Rook || rook.Color != color || rook.HasMoved {
		return false
	}
	for _, f := range between {
		if !s.Board.At(Sq(f, home)).Empty() {
			return false
		}
	}
	for _, f := range kingPath {
		if squareAttacked(s, Sq(f, home), color.Opposite()) {
			return false
		}
	}
	return true
}

// pseudoMoves emits every pseudo-legal move of the piece on from.
func pseudoMoves(s *GameState, from Square, p Piece, emit func(Move) bool) bool {
	if !generators[p.Kind](s, from, p, modeMoves, emit) {
		return false
	}
	if p.Kind == King {
		return genCastles(s, from, p, emit)
	}
	return true
}

// squareAttacked runs every generator of by in attack mode and reports
// whether any of them lands on sq.
func squareAttacked(s *GameState, sq Square, by Color) bool {
	hit := false
	for r := 0; r < 8 && !hit; r++ {
		for f := 0; f < 8 && !hit; f++ {
			p := s.Board[r][f]
			if p.Empty() || p.Color != by {
				continue
			}
			generators[p.Kind](s, Sq(f, r), p, modeAttacks, func(m Move) bool {
				if m.To == sq {
					hit = true
					return false
				}
				return true
			})
		}
	}
	return hit
}
