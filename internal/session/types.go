package session

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

// Color identifies a side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Status is the lifecycle state of a game record.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCheckmate Status = "CHECKMATE"
	StatusStalemate Status = "STALEMATE"
	StatusDraw      Status = "DRAW"
	StatusResigned  Status = "RESIGNED"
)

// Finished reports whether the game accepts no more moves.
func (s Status) Finished() bool { return s != StatusActive }

// Game is the persisted record of one game. The position is not stored
// directly; it is rebuilt by replaying MovesUCI from StartFEN.
type Game struct {
	ID         string    `json:"id"`
	StartFEN   string    `json:"start_fen"`
	FEN        string    `json:"fen"`
	MovesUCI   []string  `json:"moves_uci"`
	MovesSAN   []string  `json:"moves_san"`
	Turn       Color     `json:"turn"`
	Status     Status    `json:"status"`
	InCheck    bool      `json:"in_check,omitempty"`
	WhiteID    string    `json:"white_id"`
	WhiteName  string    `json:"white_name"`
	BlackID    string    `json:"black_id"`
	BlackName  string    `json:"black_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Winner     string    `json:"winner,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	DrawReason string    `json:"draw_reason,omitempty"`
}

// ColorOf returns the side userID plays, if any.
func (g *Game) ColorOf(userID string) (Color, bool) {
	switch strings.TrimSpace(userID) {
	case "":
		return "", false
	case g.WhiteID:
		return White, true
	case g.BlackID:
		return Black, true
	}
	return "", false
}

// PlayerID returns the participant playing c.
func (g *Game) PlayerID(c Color) string {
	if c == White {
		return g.WhiteID
	}
	return g.BlackID
}

func (g *Game) clone() *Game {
	c := *g
	c.MovesUCI = append([]string(nil), g.MovesUCI...)
	c.MovesSAN = append([]string(nil), g.MovesSAN...)
	return &c
}

// ColorChoice is the side the challenger asked for.
type ColorChoice string

const (
	ChoiceWhite  ColorChoice = "white"
	ChoiceBlack  ColorChoice = "black"
	ChoiceRandom ColorChoice = "random"
)

// ParseColorChoice accepts white/w, black/b and anything else as random.
func ParseColorChoice(s string) ColorChoice {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return ChoiceWhite
	case "black", "b":
		return ChoiceBlack
	default:
		return ChoiceRandom
	}
}

// resolve picks the challenger's side, drawing from crypto/rand for random.
func (c ColorChoice) resolve() Color {
	switch c {
	case ChoiceWhite:
		return White
	case ChoiceBlack:
		return Black
	}
	if n, err := rand.Int(rand.Reader, big.NewInt(2)); err == nil && n.Int64() == 1 {
		return Black
	}
	return White
}

// NewGameRequest describes a game between a challenger and an opponent.
// StartFEN is optional; the standard position is used when empty.
type NewGameRequest struct {
	ChallengerID   string
	ChallengerName string
	OpponentID     string
	OpponentName   string
	Color          ColorChoice
	StartFEN       string
}

// MoveResult is returned by Manager.PlayMove.
type MoveResult struct {
	Game *Game
	UCI  string
	SAN  string
}
