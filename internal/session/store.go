// Package session runs chess games on behalf of players. Each game is a
// record in a Store; moves are validated by the rules package and written
// back under a per-game exclusive update.
package session

import "context"

// UpdateFunc mutates a copy of the stored game. Returning an error aborts
// the update and leaves the stored record unchanged. It may be called more
// than once when the store retries.
type UpdateFunc func(g *Game) error

// Store persists game records.
type Store interface {
	Create(ctx context.Context, g *Game) error
	Load(ctx context.Context, id string) (*Game, error)
	// Update runs fn under exclusive access to the game and stores the result.
	Update(ctx context.Context, id string, fn UpdateFunc) (*Game, error)
	// GamesByUser lists every stored game the user takes part in, most
	// recently updated first.
	GamesByUser(ctx context.Context, userID string) ([]*Game, error)
}
