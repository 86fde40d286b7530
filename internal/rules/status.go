package rules

import "fmt"

// StatusKind classifies a position for the side to move.
type StatusKind int

const (
	Ongoing StatusKind = iota
	Check
	Checkmate
	Stalemate
	Draw
)

var statusNames = [...]string{"ongoing", "check", "checkmate", "stalemate", "draw"}

func (k StatusKind) String() string {
	if int(k) < len(statusNames) {
		return statusNames[k]
	}
	return "unknown"
}

// DrawReason explains a Draw status.
type DrawReason int

const (
	NoDraw DrawReason = iota
	FiftyMoveRule
	InsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty_move_rule"
	case InsufficientMaterial:
		return "insufficient_material"
	default:
		return "none"
	}
}

// GameStatus is derived from a GameState and never stored. Color is the side
// in check or checkmated; Reason is set only for Draw.
type GameStatus struct {
	Kind   StatusKind
	Color  Color
	Reason DrawReason
}

// Terminal reports whether no further moves may be applied.
func (s GameStatus) Terminal() bool {
	return s.Kind == Checkmate || s.Kind == Stalemate || s.Kind == Draw
}

func (s GameStatus) String() string {
	switch s.Kind {
	case Check, Checkmate:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Color)
	case Draw:
		return fmt.Sprintf("draw(%s)", s.Reason)
	default:
		return s.Kind.String()
	}
}

// fiftyMoveHalfmoves is the halfmove clock value that ends the game.
const fiftyMoveHalfmoves = 100

// Status evaluates the position for the side to move.
func Status(s *GameState) GameStatus {
	color := s.SideToMove
	inCheck := InCheck(s)
	canMove := hasLegalMove(s)

	switch {
	case inCheck && !canMove:
		return GameStatus{Kind: Checkmate, Color: color}
	case !canMove:
		return GameStatus{Kind: Stalemate, Color: color}
	case s.HalfmoveClock >= fiftyMoveHalfmoves:
		return GameStatus{Kind: Draw, Color: color, Reason: FiftyMoveRule}
	case HasInsufficientMaterial(&s.Board):
		return GameStatus{Kind: Draw, Color: color, Reason: InsufficientMaterial}
	case inCheck:
		return GameStatus{Kind: Check, Color: color}
	}
	return GameStatus{Kind: Ongoing, Color: color}
}

// HasInsufficientMaterial reports whether neither side can possibly mate:
// bare kings, a single minor piece, or only bishops all on one square colour.
func HasInsufficientMaterial(b *Board) bool {
	var minors, knights int
	light, dark := 0, 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			switch b[r][f].Kind {
			case Pawn, Rook, Queen:
				return false
			case Knight:
				knights++
				minors++
			case Bishop:
				minors++
				if Sq(f, r).light() {
					light++
				} else {
					dark++
				}
			}
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && (light == 0 || dark == 0)
}
