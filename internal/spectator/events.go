package spectator

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Event is sent from a running game to its watchers.
type Event interface {
	spectatorEvent()
}

// SnapshotEvent carries the board after every tick and after each restart.
type SnapshotEvent struct {
	GameID   string
	Player   ActivePlayer
	State    snake.State
	Snapshot snake.Snapshot
	Elapsed  time.Duration
}

func (SnapshotEvent) spectatorEvent() {}

// GameOverEvent is sent when a game ends, before the restart delay.
type GameOverEvent struct {
	GameID       string
	Score        int
	Mode         snake.Mode
	RestartDelay time.Duration
}

func (GameOverEvent) spectatorEvent() {}

// ClosedEvent is the last event a watcher receives when the hub stops.
type ClosedEvent struct {
	GameID string
}

func (ClosedEvent) spectatorEvent() {}
