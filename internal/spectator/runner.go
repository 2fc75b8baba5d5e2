package spectator

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// runner is one autoplay game. Only the hub loop calls step and restart;
// view may be called from anywhere.
type runner struct {
	id       string
	username string
	engine   *snake.Engine
	watchers *watchers

	mu        sync.RWMutex
	state     snake.State
	ticks     uint64
	elapsed   time.Duration
	startedAt time.Time

	// Owned by the hub loop.
	lastPut   ActivePlayer
	lastPutAt time.Time
}

func newRunner(id, username string, engine *snake.Engine, cfg snake.Config) *runner {
	r := &runner{
		id:       id,
		username: username,
		engine:   engine,
		watchers: newWatchers(),
	}
	r.state = engine.Start(engine.Initialize(cfg))
	r.startedAt = time.Now().UTC()
	return r
}

// step plays one autoplay move and reports whether it ended the game.
func (r *runner) step() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.state
	dir := r.engine.AutoplayDirection(s.Snake, s.Food, s.Direction, s.GridSize)
	s = snake.RequestDirection(s, dir)
	r.elapsed += snake.TickInterval(s)
	r.state = r.engine.Advance(s)
	r.ticks++
	return r.state.Status == snake.StatusGameOver
}

// restart begins a new round in the same mode.
func (r *runner) restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = r.engine.Start(r.state)
	r.ticks = 0
	r.elapsed = 0
	r.startedAt = time.Now().UTC()
}

func (r *runner) finished() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Status == snake.StatusGameOver
}

func (r *runner) interval() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snake.TickInterval(r.state)
}

func (r *runner) view() GameView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return GameView{
		Player: ActivePlayer{
			ID:        r.id,
			Username:  r.username,
			Score:     r.state.Score,
			Mode:      r.state.Mode,
			StartedAt: r.startedAt,
		},
		State:    r.state.Clone(),
		Snapshot: snake.SnapshotOf(r.state, r.ticks),
		Elapsed:  r.elapsed,
	}
}
