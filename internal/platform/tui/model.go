package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ScoreSaver records finished games.
type ScoreSaver interface {
	SaveScore(sub storage.ScoreSubmission) (storage.ScoreEntry, error)
}

// configurable is implemented by games that accept engine settings.
type configurable interface {
	Configure(cfg snake.Config, restartDelay time.Duration)
}

// CreateGame creates a registered variant and applies the loaded settings.
func CreateGame(id string, cfg config.SnakeConfig) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := game.(configurable); ok {
		c.Configure(cfg.Game.ToEngine(), cfg.Spectator.RestartDelay)
	}
	return game, nil
}

// GameOptions are the per-session settings of a GameModel.
type GameOptions struct {
	Store    ScoreSaver // Nil disables saving
	Username string
	Theme    Theme
}

// GameModel runs one registered game at the configured frame rate and saves
// the score when a human-played game ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       GameOptions
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	gen        uint64

	scoreSaved bool
	saved      *storage.ScoreEntry
	saveErr    error
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Theme.Cells == nil {
		opts.Theme = DefaultTheme()
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gen:        nextGen(),
	}
}

// Init resets the game and starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B leaves a game that is not in progress; autoplay games can always be left.
	if m.inputFrame.Has(core.ActionBack) {
		st := m.game.State()
		if st.GameOver || st.Paused || st.Autoplay || st.Elapsed == 0 {
			m.backToMenu = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
		m.saved = nil
		m.saveErr = nil
	} else if !m.scoreSaved {
		m.scoreSaved = true
		m.saveScore()
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScore records the finished game. Autoplay games and zero scores are
// not recorded; a failed save does not interrupt the session.
func (m *GameModel) saveScore() {
	st := m.gameState
	if m.opts.Store == nil || st.Autoplay || st.Score <= 0 {
		return
	}
	username := m.opts.Username
	if username == "" {
		username = "anonymous"
	}
	entry, err := m.opts.Store.SaveScore(storage.ScoreSubmission{
		Username: username,
		Mode:     st.Mode,
		Score:    st.Score,
		Duration: st.Elapsed,
	})
	if err != nil {
		m.saveErr = err
		return
	}
	m.saved = &entry
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if line := m.statusLine(); line != "" && m.screen.Height() > 0 {
		color := core.ColorAccent
		if m.saveErr != nil {
			color = core.ColorWarning
		}
		m.screen.DrawTextCentered(m.screen.Height()-1, line, color)
	}
	return RenderScreen(m.screen, m.opts.Theme)
}

func (m GameModel) statusLine() string {
	switch {
	case m.saveErr != nil:
		return "Could not save score"
	case m.saved != nil:
		return fmt.Sprintf("Saved for %s: rank #%d in %s  (B: menu)", m.saved.Username, m.saved.Rank, m.saved.Mode)
	case m.gameState.GameOver && !m.gameState.Autoplay:
		return "R: play again  B: menu"
	}
	return ""
}

// IsQuitting reports whether the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Saved returns the last saved entry, if any.
func (m GameModel) Saved() *storage.ScoreEntry {
	return m.saved
}

// Run plays game in the local terminal until the user quits or goes back.
// It reports whether the user asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	p := tea.NewProgram(NewGameModel(game, cfg, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
