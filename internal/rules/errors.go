package rules

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to these, so callers can
// branch with errors.Is and still reach the details with errors.As.
var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidSquare   = errors.New("invalid square")
	ErrInvalidFEN      = errors.New("invalid FEN string")
	ErrInvalidNotation = errors.New("invalid move notation")
)

// IllegalMoveError reports a move that is not in the legal set of its origin square.
type IllegalMoveError struct {
	Move Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s", e.Move)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }

// GameOverError reports an attempt to move in a finished game.
type GameOverError struct {
	Status GameStatus
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("game is over: %s", e.Status)
}

func (e *GameOverError) Unwrap() error { return ErrGameOver }

// InvalidSquareError reports a coordinate outside the board.
type InvalidSquareError struct {
	Square Square
}

func (e *InvalidSquareError) Error() string {
	return fmt.Sprintf("invalid square (file %d, rank %d)", e.Square.File, e.Square.Rank)
}

func (e *InvalidSquareError) Unwrap() error { return ErrInvalidSquare }

func checkSquare(sq Square) error {
	if !sq.Valid() {
		return &InvalidSquareError{Square: sq}
	}
	return nil
}
