package snake

import (
	"fmt"
	"time"
)

// Engine applies the game rules. It holds only the random source, so an
// Engine is not safe for concurrent use; give each running game its own.
type Engine struct {
	rng Rand
}

// NewEngine creates an engine drawing randomness from rng.
func NewEngine(rng Rand) *Engine {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Engine{rng: rng}
}

// NewSeededEngine creates an engine with a math/rand source. Seed 0 seeds from the clock.
func NewSeededEngine(seed int64) *Engine {
	return NewEngine(NewRand(seed))
}

// Initialize builds an idle game: a three cell snake centered on the board
// heading right, and food on a free cell.
func (e *Engine) Initialize(cfg Config) State {
	cfg = cfg.withDefaults()
	if cfg.GridSize < 0 {
		panic(fmt.Sprintf("snake: grid size must be positive, got %d", cfg.GridSize))
	}

	center := cfg.GridSize / 2
	body := []Position{
		{X: center, Y: center},
		{X: center - 1, Y: center},
		{X: center - 2, Y: center},
	}

	return State{
		Snake:          body,
		Food:           e.PlaceFood(body, cfg.GridSize),
		Direction:      DirRight,
		NextDirection:  DirRight,
		Score:          0,
		Status:         StatusIdle,
		Mode:           cfg.Mode,
		Speed:          cfg.InitialSpeed,
		GridSize:       cfg.GridSize,
		InitialSpeed:   cfg.InitialSpeed,
		SpeedIncrement: cfg.SpeedIncrement,
	}
}

// Advance runs one tick. Only a playing game moves.
func (e *Engine) Advance(s State) State {
	if s.Status != StatusPlaying || len(s.Snake) == 0 {
		return s
	}

	dir := s.NextDirection
	newHead := s.Head().Add(dir.Delta())

	if s.Mode == ModePassThrough {
		newHead = wrap(newHead, s.GridSize)
	} else if !s.InBounds(newHead) {
		s.Status = StatusGameOver
		return s
	}

	// The tail index is skipped: it moves away this tick, and the rule holds
	// even on a growth tick.
	last := len(s.Snake) - 1
	for i, seg := range s.Snake {
		if i != last && seg == newHead {
			s.Status = StatusGameOver
			return s
		}
	}

	next := s
	next.Direction = dir

	if newHead == s.Food {
		grown := make([]Position, 0, len(s.Snake)+1)
		grown = append(grown, newHead)
		grown = append(grown, s.Snake...)

		next.Snake = grown
		next.Food = e.PlaceFood(grown, s.GridSize)
		next.Score = s.Score + FoodReward
		next.Speed = max(MinSpeed, s.Speed-s.SpeedIncrement)
		return next
	}

	moved := make([]Position, 0, len(s.Snake))
	moved = append(moved, newHead)
	moved = append(moved, s.Snake[:last]...)
	next.Snake = moved
	return next
}

// wrap maps a position that left the board by one cell onto the opposite edge.
func wrap(p Position, gridSize int) Position {
	if p.X < 0 {
		p.X = gridSize - 1
	} else if p.X >= gridSize {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = gridSize - 1
	} else if p.Y >= gridSize {
		p.Y = 0
	}
	return p
}

// RequestDirection queues d for the next tick. Reversals against the last
// applied direction and input outside play are ignored.
func RequestDirection(s State, d Direction) State {
	if s.Status != StatusPlaying {
		return s
	}
	if IsOpposite(s.Direction, d) {
		return s
	}
	s.NextDirection = d
	return s
}

// Start begins a fresh game from idle or game over, keeping the mode, grid
// size and speed settings the state was initialized with. From paused or
// playing it only resumes.
func (e *Engine) Start(s State) State {
	if s.Status == StatusIdle || s.Status == StatusGameOver {
		fresh := e.Initialize(Config{
			GridSize:       s.GridSize,
			InitialSpeed:   s.InitialSpeed,
			SpeedIncrement: s.SpeedIncrement,
			Mode:           s.Mode,
		})
		fresh.Status = StatusPlaying
		return fresh
	}
	s.Status = StatusPlaying
	return s
}

// Pause stops a playing game.
func Pause(s State) State {
	if s.Status == StatusPlaying {
		s.Status = StatusPaused
	}
	return s
}

// Resume continues a paused game.
func Resume(s State) State {
	if s.Status == StatusPaused {
		s.Status = StatusPlaying
	}
	return s
}

// TogglePause flips between playing and paused.
func TogglePause(s State) State {
	switch s.Status {
	case StatusPlaying:
		return Pause(s)
	case StatusPaused:
		return Resume(s)
	}
	return s
}

// SetMode replaces the boundary policy. It does not check the status; hosts
// only call it while idle or after game over.
func SetMode(s State, m Mode) State {
	s.Mode = m
	return s
}

// TickInterval is the delay before the next tick of s. Hosts read it again
// after every tick because eating food shortens it.
func TickInterval(s State) time.Duration {
	speed := s.Speed
	if speed <= 0 {
		speed = DefaultConfig().InitialSpeed
	}
	return time.Duration(speed) * time.Millisecond
}
