package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
	screenSpectate
)

// SessionOptions are the dependencies of one terminal session.
type SessionOptions struct {
	Config     config.SnakeConfig
	Store      Scores
	Hub        Watcher
	Theme      Theme
	Username   string
	Difficulty config.DifficultyPreset
}

// SessionModel drives a whole session: menu, then a game, the leaderboard or
// the live games, then back to the menu. Child models end with tea.Quit when
// they are done; the session drops that command and switches screens.
type SessionModel struct {
	opts    SessionOptions
	runtime core.RuntimeConfig
	current screen
	slot    *watchSlot

	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	spectate SpectateModel

	quitting bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(opts SessionOptions, rt core.RuntimeConfig) SessionModel {
	if opts.Theme.Cells == nil {
		opts.Theme = DefaultTheme()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyNormal
	}
	m := SessionModel{
		opts:    opts,
		runtime: rt,
		slot:    &watchSlot{},
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.runtime, MenuOptions{
		Spectate:   m.opts.Hub != nil,
		Difficulty: m.opts.Difficulty,
		Theme:      m.opts.Theme,
	})
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Close releases a watch session left open by a dropped connection.
func (m SessionModel) Close() {
	m.slot.release()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSpectate:
		return m.updateSpectate(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.opts.Difficulty = m.menu.Difficulty()
	m.runtime = m.menu.Config()

	switch selected.Kind {
	case MenuPlay:
		cfg := m.opts.Config
		config.ApplyPreset(&cfg, m.opts.Difficulty)
		game, err := CreateGame(selected.GameID, cfg)
		if err != nil {
			m.menu = m.newMenu()
			return m, nil
		}
		rt := m.runtime
		rt.Seed = time.Now().UnixNano()
		var saver ScoreSaver
		if m.opts.Store != nil {
			saver = m.opts.Store
		}
		m.game = NewGameModel(game, rt, GameOptions{
			Store:    saver,
			Username: m.opts.Username,
			Theme:    m.opts.Theme,
		})
		m.current = screenGame
		return m, m.game.Init()

	case MenuScores:
		var lister ScoreLister
		if m.opts.Store != nil {
			lister = m.opts.Store
		}
		m.scores = NewScoreboardModel(lister, m.runtime.ScreenW, m.runtime.ScreenH, m.opts.Theme)
		m.current = screenScores
		return m, m.scores.Init()

	case MenuSpectate:
		if m.opts.Hub == nil {
			m.menu = m.newMenu()
			return m, nil
		}
		m.spectate = newSpectateModel(m.opts.Hub, m.runtime.ScreenW, m.runtime.ScreenH, m.opts.Theme, m.slot)
		m.current = screenSpectate
		return m, m.spectate.Init()
	}
	return m, nil
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}
	switch {
	case m.game.BackToMenu():
		return m.backToMenu()
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}
	switch {
	case m.scores.IsGoingBack():
		return m.backToMenu()
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateSpectate(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.spectate.Update(msg)
	if spectate, ok := next.(SpectateModel); ok {
		m.spectate = spectate
	}
	switch {
	case m.spectate.BackToMenu():
		return m.backToMenu()
	case m.spectate.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenSpectate:
		return m.spectate.View()
	}
	return m.menu.View()
}

// Screen names the active screen, for tests and logs.
func (m SessionModel) Screen() string {
	switch m.current {
	case screenGame:
		return "game"
	case screenScores:
		return "scores"
	case screenSpectate:
		return "spectate"
	}
	return "menu"
}
