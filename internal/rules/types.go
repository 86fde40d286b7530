// Package rules implements standard chess rules: legal move generation,
// attack detection, move application and game status.
//
// Every operation is a pure function over a GameState. ApplyMove never
// mutates its input; it returns a fresh state or an error and leaves the
// caller's state untouched.
package rules

import "fmt"

// Color identifies a side.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is +1 for white pawns and -1 for black pawns.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// homeRank is the rank index of the side's back rank.
func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// Kind is a piece type. NoKind marks an empty square.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Letter returns the uppercase SAN/FEN letter for the kind.
func (k Kind) Letter() byte {
	letters := [...]byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// promotionKinds lists the kinds a pawn may promote to, strongest first.
var promotionKinds = [...]Kind{Queen, Rook, Bishop, Knight}

// Piece is a coloured piece. The zero value is an empty square.
type Piece struct {
	Kind     Kind
	Color    Color
	HasMoved bool
}

// Empty reports whether p is the empty square.
func (p Piece) Empty() bool { return p.Kind == NoKind }

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// Square is a board coordinate. File 0..7 maps to a..h, Rank 0..7 maps to 1..8.
type Square struct {
	File int
	Rank int
}

// Sq is shorthand for Square{File: file, Rank: rank}.
func Sq(file, rank int) Square { return Square{File: file, Rank: rank} }

// Valid reports whether both coordinates are on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

func (s Square) offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// light reports whether the square is a light square.
func (s Square) light() bool { return (s.File+s.Rank)%2 == 1 }

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("square %q: %w", text, ErrInvalidNotation)
	}
	sq := Square{File: int(text[0]) - 'a', Rank: int(text[1]) - '1'}
	if !sq.Valid() {
		return Square{}, &InvalidSquareError{Square: sq}
	}
	return sq, nil
}

// MoveFlag marks moves with side effects beyond relocating one piece.
type MoveFlag int

const (
	Normal MoveFlag = iota
	CastleKingside
	CastleQueenside
	EnPassant
	DoublePawnPush
)

var flagNames = [...]string{"normal", "castle_kingside", "castle_queenside", "en_passant", "double_pawn_push"}

func (f MoveFlag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return "unknown"
}

// Move is a single ply. Promotion is NoKind unless a pawn reaches the last rank.
type Move struct {
	From      Square
	To        Square
	Promotion Kind
	Flag      MoveFlag
}

// String returns the move in UCI long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(rune(m.Promotion.Letter() + ('a' - 'A')))
	}
	return s
}

// Castling holds the remaining castling rights. Rights are only ever revoked.
type Castling struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

func (c Castling) kingside(color Color) bool {
	if color == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

func (c Castling) queenside(color Color) bool {
	if color == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

func (c *Castling) revoke(color Color, kingside, queenside bool) {
	if color == White {
		c.WhiteKingside = c.WhiteKingside && !kingside
		c.WhiteQueenside = c.WhiteQueenside && !queenside
		return
	}
	c.BlackKingside = c.BlackKingside && !kingside
	c.BlackQueenside = c.BlackQueenside && !queenside
}

// revokeCorner drops the right tied to a rook corner, if sq is one.
func (c *Castling) revokeCorner(sq Square) {
	switch sq {
	case Sq(7, 0):
		c.WhiteKingside = false
	case Sq(0, 0):
		c.WhiteQueenside = false
	case Sq(7, 7):
		c.BlackKingside = false
	case Sq(0, 7):
		c.BlackQueenside = false
	}
}

// GameState is a complete position plus the moves that led to it.
type GameState struct {
	Board          Board
	SideToMove     Color
	Castling       Castling
	EnPassant      *Square
	HalfmoveClock  int
	FullmoveNumber int
	History        []Move
}

// Clone returns a deep copy of s.
func (s *GameState) Clone() *GameState {
	c := *s
	if s.EnPassant != nil {
		ep := *s.EnPassant
		c.EnPassant = &ep
	}
	c.History = append([]Move(nil), s.History...)
	return &c
}
