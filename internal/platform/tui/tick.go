// Package tui runs snake in the terminal with Bubble Tea: the menu, the game
// loop, the high score table, the spectator view and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one platform frame. Gen identifies the game
// model that scheduled it, so frames of a left game are ignored.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var frameGen atomic.Uint64

// nextGen returns a new frame generation.
func nextGen() uint64 {
	return frameGen.Add(1)
}

// tickCmd returns a command that sends a TickMsg after one frame at tickRate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
