package snake

import (
	"fmt"
	"strings"
)

// Engine constants.
const (
	FoodReward = 10 // Points per food eaten
	MinSpeed   = 50 // Fastest allowed tick interval in ms
)

// Position is a grid cell coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p offset by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// AllDirections lists every direction in a stable order.
var AllDirections = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the one-cell offset for d. Y grows downwards.
func (d Direction) Delta() Position {
	switch d {
	case DirUp:
		return Position{Y: -1}
	case DirDown:
		return Position{Y: 1}
	case DirLeft:
		return Position{X: -1}
	default:
		return Position{X: 1}
	}
}

// IsOpposite reports whether a and b point in reverse directions.
func IsOpposite(a, b Direction) bool {
	return a.Opposite() == b
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return DirUp, nil
	case "DOWN":
		return DirDown, nil
	case "LEFT":
		return DirLeft, nil
	case "RIGHT":
		return DirRight, nil
	}
	return DirRight, fmt.Errorf("snake: unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Mode is the boundary policy of the board.
type Mode string

const (
	ModeWalls       Mode = "walls"        // Leaving the grid ends the game
	ModePassThrough Mode = "pass-through" // Edges wrap around
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWalls:
		return ModeWalls, nil
	case ModePassThrough, "pass_through", "passthrough":
		return ModePassThrough, nil
	}
	return ModeWalls, fmt.Errorf("snake: unknown mode %q", s)
}

// Title returns a display name for the mode.
func (m Mode) Title() string {
	if m == ModePassThrough {
		return "Pass-through"
	}
	return "Walls"
}

// Status is the lifecycle state of a game.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "game-over"
)

// Config holds the parameters for a new game.
// Zero fields fall back to DefaultConfig values. InitialSpeed is raised to
// MinSpeed, so eating never slows a game down.
type Config struct {
	GridSize       int  // Cells per side
	InitialSpeed   int  // Tick interval in ms, smaller is faster
	SpeedIncrement int  // Ms removed from the interval per food, at least 1
	Mode           Mode // Boundary policy
}

// DefaultConfig returns the standard game configuration.
func DefaultConfig() Config {
	return Config{
		GridSize:       20,
		InitialSpeed:   150,
		SpeedIncrement: 2,
		Mode:           ModeWalls,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.GridSize == 0 {
		c.GridSize = def.GridSize
	}
	if c.InitialSpeed == 0 {
		c.InitialSpeed = def.InitialSpeed
	}
	c.InitialSpeed = max(c.InitialSpeed, MinSpeed)
	if c.SpeedIncrement <= 0 {
		c.SpeedIncrement = def.SpeedIncrement
	}
	if c.Mode == "" {
		c.Mode = def.Mode
	}
	return c
}

// State is one immutable snapshot of a game.
// Transitions return a new State; Snake slices are never written after creation.
type State struct {
	Snake          []Position `json:"snake"` // Head at index 0
	Food           Position   `json:"food"`
	Direction      Direction  `json:"direction"`     // Last applied move
	NextDirection  Direction  `json:"nextDirection"` // Applied on the next tick
	Score          int        `json:"score"`
	Status         Status     `json:"status"`
	Mode           Mode       `json:"mode"`
	Speed          int        `json:"speed"` // Tick interval in ms
	GridSize       int        `json:"gridSize"`
	InitialSpeed   int        `json:"initialSpeed"` // Speed restored by Start
	SpeedIncrement int        `json:"speedIncrement"`
}

// Head returns the first snake segment.
func (s State) Head() Position {
	if len(s.Snake) == 0 {
		return Position{}
	}
	return s.Snake[0]
}

// Occupies reports whether any snake segment is on p.
func (s State) Occupies(p Position) bool {
	return occupied(s.Snake, p)
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Snake = append([]Position(nil), s.Snake...)
	return s
}

// InBounds reports whether p lies on the grid.
func (s State) InBounds(p Position) bool {
	return p.X >= 0 && p.X < s.GridSize && p.Y >= 0 && p.Y < s.GridSize
}

func occupied(snake []Position, p Position) bool {
	for _, seg := range snake {
		if seg == p {
			return true
		}
	}
	return false
}
