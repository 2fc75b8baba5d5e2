package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// DefaultRestartDelay is how long an autoplay game shows its final board.
const DefaultRestartDelay = 2 * time.Second

// Variant describes a registered flavor of the game.
type Variant struct {
	ID          string
	Title       string
	Description string
	Mode        Mode // Empty means the configured mode
	Autoplay    bool
}

// Variants lists the registered flavors.
var Variants = []Variant{
	{
		ID:          "snake",
		Title:       "Snake",
		Description: "Classic snake, the walls are deadly",
		Mode:        ModeWalls,
	},
	{
		ID:          "snake_pass",
		Title:       "Snake (Pass-through)",
		Description: "Edges wrap around to the other side",
		Mode:        ModePassThrough,
	},
	{
		ID:          "snake_demo",
		Title:       "Snake (Demo)",
		Description: "Watch the computer play",
		Autoplay:    true,
	},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, v.Description, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// Game hosts the engine on the platform's fixed frame loop. It owns the
// State and re-reads State.Speed after every tick to schedule the next one.
type Game struct {
	variant      Variant
	cfg          Config
	restartDelay time.Duration

	engine *Engine
	state  State

	frame     time.Duration // Wall time per Step
	acc       time.Duration // Time since the last tick
	elapsed   time.Duration // Time spent playing
	overFor   time.Duration // Time since game over, autoplay only
	ticks     uint64
	lastMoved bool
}

// New creates the classic walls game.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewVariant creates a game for v with the default configuration.
func NewVariant(v Variant) *Game {
	return &Game{
		variant:      v,
		cfg:          DefaultConfig(),
		restartDelay: DefaultRestartDelay,
	}
}

// Configure replaces the engine configuration used by the next Reset.
// The variant's mode still takes precedence over cfg.Mode.
func (g *Game) Configure(cfg Config, restartDelay time.Duration) {
	g.cfg = cfg.withDefaults()
	if restartDelay > 0 {
		g.restartDelay = restartDelay
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Autoplay reports whether the computer steers this game.
func (g *Game) Autoplay() bool {
	return g.variant.Autoplay
}

func (g *Game) engineConfig() Config {
	cfg := g.cfg
	if g.variant.Mode != "" {
		cfg.Mode = g.variant.Mode
	}
	return cfg
}

// Reset builds a fresh idle board. Autoplay games start immediately.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.engine = NewSeededEngine(cfg.Seed)
	g.frame = cfg.FrameDuration()
	g.acc = 0
	g.elapsed = 0
	g.overFor = 0
	g.ticks = 0
	g.lastMoved = false

	g.state = g.engine.Initialize(g.engineConfig())
	if g.variant.Autoplay {
		g.start()
	}
}

func (g *Game) start() {
	g.state = g.engine.Start(g.state)
}

// restart begins a new round after game over.
func (g *Game) restart() {
	g.start()
	g.acc = 0
	g.elapsed = 0
	g.overFor = 0
}

// Step applies the frame's input, then advances the clock by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}

	if !g.variant.Autoplay {
		g.handleInput(in)
	}

	g.lastMoved = false
	switch g.state.Status {
	case StatusPlaying:
		g.elapsed += g.frame
		g.acc += g.frame
		for g.state.Status == StatusPlaying && g.acc >= TickInterval(g.state) {
			g.acc -= TickInterval(g.state)
			g.tick()
		}
	case StatusGameOver:
		if g.variant.Autoplay {
			g.overFor += g.frame
			if g.overFor >= g.restartDelay {
				g.restart()
			}
		}
	}

	return core.StepResult{State: g.State(), Moved: g.lastMoved}
}

func (g *Game) tick() {
	if g.variant.Autoplay {
		s := g.state
		dir := g.engine.AutoplayDirection(s.Snake, s.Food, s.Direction, s.GridSize)
		g.state = RequestDirection(s, dir)
	}
	g.state = g.engine.Advance(g.state)
	g.ticks++
	g.lastMoved = true
}

func (g *Game) handleInput(in core.InputFrame) {
	status := g.state.Status
	finished := status == StatusIdle || status == StatusGameOver

	switch {
	case in.Has(core.ActionMode) && finished:
		next := ModePassThrough
		if g.state.Mode == ModePassThrough {
			next = ModeWalls
		}
		if status == StatusGameOver {
			g.state = g.engine.Initialize(g.engineConfig())
		}
		g.state = SetMode(g.state, next)
		return
	case in.Has(core.ActionStart):
		if finished {
			g.restart()
		} else {
			g.state = TogglePause(g.state)
		}
		return
	case in.Has(core.ActionRestart) && status == StatusGameOver:
		g.restart()
		return
	case in.Has(core.ActionPause):
		g.state = TogglePause(g.state)
		return
	}

	for _, a := range in.Directions {
		if d, ok := actionDirection(a); ok {
			g.state = RequestDirection(g.state, d)
		}
	}
}

func actionDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// Render draws the board and HUD.
func (g *Game) Render(dst *core.Screen) {
	footer := "arrows/WASD move  SPACE start/pause  M mode  Q quit"
	if g.variant.Autoplay {
		footer = "demo mode  Q quit"
	}
	DrawBoard(dst, g.state, BoardView{
		Title:   g.variant.Title,
		Elapsed: g.elapsed,
		Footer:  footer,
		Demo:    g.variant.Autoplay,
	})
}

// State reports the platform view of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Mode:     string(g.state.Mode),
		Elapsed:  g.elapsed,
		GameOver: g.state.Status == StatusGameOver,
		Paused:   g.state.Status == StatusPaused,
		Autoplay: g.variant.Autoplay,
	}
}

// EngineState returns a copy of the current engine state.
func (g *Game) EngineState() State {
	return g.state.Clone()
}
