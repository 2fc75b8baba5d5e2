// Package spectator runs computer-played games that anyone can watch.
//
// Each game lives on its own goroutine with its own Engine and re-arms its
// timer from the state's current tick interval, so games speed up as they
// grow. Watchers attach through ChannelSession and receive every tick.
package spectator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/presence"
)

var (
	// ErrGameNotFound is returned for an unknown game ID.
	ErrGameNotFound = errors.New("spectator: game not found")
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("spectator: hub already started")
)

// Config controls how many games the hub runs and how they play.
type Config struct {
	Games           int
	RestartDelay    time.Duration
	Modes           []snake.Mode // Assigned round-robin
	Usernames       []string     // Assigned round-robin
	Engine          snake.Config
	Seed            int64         // 0 picks a time-based seed
	PresenceRefresh time.Duration // Re-publish interval for unchanged players
}

// DefaultConfig returns a hub running three walls games.
func DefaultConfig() Config {
	return FromConfig(config.DefaultSnakeConfig())
}

// FromConfig builds the hub settings from the loaded configuration.
func FromConfig(c config.SnakeConfig) Config {
	refresh := c.Presence.TTL / 3
	return Config{
		Games:           c.Spectator.Games,
		RestartDelay:    c.Spectator.RestartDelay,
		Modes:           c.Spectator.SpectatorModes(),
		Usernames:       c.Spectator.Usernames,
		Engine:          c.Game.ToEngine(),
		PresenceRefresh: refresh,
	}
}

func (c Config) withDefaults() Config {
	if c.Games <= 0 {
		c.Games = 1
	}
	if c.RestartDelay <= 0 {
		c.RestartDelay = snake.DefaultRestartDelay
	}
	if len(c.Modes) == 0 {
		c.Modes = []snake.Mode{snake.ModeWalls}
	}
	if len(c.Usernames) == 0 {
		c.Usernames = []string{"Player"}
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.PresenceRefresh <= 0 {
		c.PresenceRefresh = 10 * time.Second
	}
	return c
}

// ActivePlayer describes one running game.
type ActivePlayer struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Score     int        `json:"score"`
	Mode      snake.Mode `json:"mode"`
	StartedAt time.Time  `json:"startedAt"`
}

// GameView is a consistent copy of one game.
type GameView struct {
	Player     ActivePlayer   `json:"player"`
	State      snake.State    `json:"state"`
	Snapshot   snake.Snapshot `json:"snapshot"`
	Elapsed    time.Duration  `json:"elapsed"`
	Spectators int            `json:"spectators"`
}

// Hub owns the running games.
type Hub struct {
	cfg      Config
	presence presence.Store
	logger   *log.Logger

	mu      sync.RWMutex
	games   map[string]*runner
	order   []string
	cancel  context.CancelFunc
	started bool

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a hub. A nil store keeps presence in memory and a nil logger
// discards hub logs.
func New(cfg Config, store presence.Store, logger *log.Logger) *Hub {
	if store == nil {
		store = presence.NewMemoryStore()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		cfg:      cfg.withDefaults(),
		presence: store,
		logger:   logger.WithPrefix("spectator"),
		games:    make(map[string]*runner),
	}
}

// Start launches every game. The games stop when ctx is cancelled or Stop
// is called.
func (h *Hub) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyStarted
	}
	h.started = true

	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	runners := make([]*runner, 0, h.cfg.Games)
	for i := range h.cfg.Games {
		engineCfg := h.cfg.Engine
		engineCfg.Mode = h.cfg.Modes[i%len(h.cfg.Modes)]
		r := newRunner(
			uuid.NewString(),
			h.cfg.Usernames[i%len(h.cfg.Usernames)],
			snake.NewSeededEngine(h.cfg.Seed+int64(i)),
			engineCfg,
		)
		h.games[r.id] = r
		h.order = append(h.order, r.id)
		runners = append(runners, r)
	}
	h.mu.Unlock()

	for _, r := range runners {
		h.wg.Add(1)
		go h.run(ctx, r)
	}
	h.logger.Info("spectator games started", "games", len(runners))
	return nil
}

// Stop ends every game, removes the players from presence and closes all
// watcher sessions.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.mu.RLock()
		cancel := h.cancel
		h.mu.RUnlock()
		if cancel != nil {
			cancel()
		}
		h.wg.Wait()

		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, id := range h.order {
			r := h.games[id]
			if err := h.presence.Remove(context.Background(), id); err != nil {
				h.logger.Warn("could not remove player", "game", id, "error", err)
			}
			r.watchers.closeAll(ClosedEvent{GameID: id})
		}
		h.logger.Info("spectator games stopped")
	})
}

// run is the loop of one game. It owns the engine; readers go through the
// runner's lock.
func (h *Hub) run(ctx context.Context, r *runner) {
	defer h.wg.Done()

	h.publish(ctx, r)
	timer := time.NewTimer(r.interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if r.finished() {
			r.restart()
			h.logger.Debug("game restarted", "game", r.id, "user", r.username)
			h.publish(ctx, r)
			timer.Reset(r.interval())
			continue
		}

		over := r.step()
		h.publish(ctx, r)
		if over {
			view := r.view()
			h.logger.Debug("game over", "game", r.id, "score", view.Snapshot.Score)
			r.watchers.broadcast(GameOverEvent{
				GameID:       r.id,
				Score:        view.Snapshot.Score,
				Mode:         view.Snapshot.Mode,
				RestartDelay: h.cfg.RestartDelay,
			})
			timer.Reset(h.cfg.RestartDelay)
			continue
		}
		timer.Reset(r.interval())
	}
}

// publish sends the board to watchers and mirrors the player into presence
// when its score or round changed, or the last write is getting old.
func (h *Hub) publish(ctx context.Context, r *runner) {
	view := r.view()
	r.watchers.broadcast(SnapshotEvent{
		GameID:   r.id,
		Player:   view.Player,
		State:    view.State,
		Snapshot: view.Snapshot,
		Elapsed:  view.Elapsed,
	})

	now := time.Now()
	if view.Player == r.lastPut && now.Sub(r.lastPutAt) < h.cfg.PresenceRefresh {
		return
	}
	err := h.presence.Put(ctx, presence.Player{
		ID:        view.Player.ID,
		Username:  view.Player.Username,
		Score:     view.Player.Score,
		Mode:      string(view.Player.Mode),
		StartedAt: view.Player.StartedAt,
	})
	if err != nil {
		if ctx.Err() == nil {
			h.logger.Warn("could not publish player", "game", r.id, "error", err)
		}
		return
	}
	r.lastPut = view.Player
	r.lastPutAt = now
}

// Active lists the running games in start order.
func (h *Hub) Active() []ActivePlayer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	players := make([]ActivePlayer, 0, len(h.order))
	for _, id := range h.order {
		players = append(players, h.games[id].view().Player)
	}
	return players
}

// Get returns a copy of one game.
func (h *Hub) Get(id string) (GameView, error) {
	r, err := h.lookup(id)
	if err != nil {
		return GameView{}, err
	}
	v := r.view()
	v.Spectators = r.watchers.count()
	return v, nil
}

// Subscribe attaches a new watcher to game id. The current board is queued
// right away so the watcher has something to draw before the next tick.
func (h *Hub) Subscribe(id string, bufferSize int) (*ChannelSession, error) {
	r, err := h.lookup(id)
	if err != nil {
		return nil, err
	}

	s := NewChannelSession(SessionID(uuid.NewString()), bufferSize)
	view := r.view()
	s.Send(SnapshotEvent{
		GameID:   id,
		Player:   view.Player,
		State:    view.State,
		Snapshot: view.Snapshot,
		Elapsed:  view.Elapsed,
	})
	r.watchers.add(s)
	h.logger.Debug("watcher joined", "game", id, "session", s.ID())
	return s, nil
}

// Unsubscribe detaches and closes s.
func (h *Hub) Unsubscribe(id string, s *ChannelSession) {
	if s == nil {
		return
	}
	if r, err := h.lookup(id); err == nil {
		r.watchers.remove(s.ID())
	}
	s.Close()
}

// SpectatorCount returns how many watchers game id has.
func (h *Hub) SpectatorCount(id string) (int, error) {
	r, err := h.lookup(id)
	if err != nil {
		return 0, err
	}
	return r.watchers.count(), nil
}

func (h *Hub) lookup(id string) (*runner, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return r, nil
}
