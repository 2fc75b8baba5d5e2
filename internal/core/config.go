package core

import "time"

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform
	Seed     int64 // RNG seed, 0 means time based
}

// DefaultConfig returns an 80x24 screen at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameDuration is the wall time of one platform frame.
func (c RuntimeConfig) FrameDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	Mode     string        // Leaderboard bucket, e.g. "walls"
	Elapsed  time.Duration // Time spent playing, pauses excluded
	GameOver bool
	Paused   bool
	Autoplay bool // Computer driven, never saved to the leaderboard
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
	Moved bool // Whether the simulation advanced this frame
}
