// Package presence publishes the players currently in a game so that other
// processes (the HTTP API, other SSH hosts) can list them.
package presence

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrNotFound is returned when no active player has the requested ID.
var ErrNotFound = errors.New("presence: player not found")

// Player is an active game visible to spectators.
type Player struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"startedAt"`
}

// Store holds the active players.
type Store interface {
	// Put inserts or refreshes a player.
	Put(ctx context.Context, p Player) error
	// Remove deletes a player. Removing an unknown ID is not an error.
	Remove(ctx context.Context, id string) error
	// Get returns one player or ErrNotFound.
	Get(ctx context.Context, id string) (Player, error)
	// List returns every active player, oldest game first.
	List(ctx context.Context) ([]Player, error)
	// Close releases the backend.
	Close() error
}

func sortPlayers(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		if !players[i].StartedAt.Equal(players[j].StartedAt) {
			return players[i].StartedAt.Before(players[j].StartedAt)
		}
		return players[i].ID < players[j].ID
	})
}
