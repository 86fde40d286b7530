package session

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrNotParticipant   = errors.New("user is not a participant in this game")
	ErrNotYourTurn      = errors.New("it is not this player's turn")
	ErrGameFinished     = errors.New("game is already finished")
	ErrConcurrentUpdate = errors.New("game was updated concurrently")
	ErrInvalidRequest   = errors.New("invalid game request")
	ErrGameExists       = errors.New("game already exists")
)
