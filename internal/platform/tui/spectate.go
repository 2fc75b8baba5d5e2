package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/spectator"
)

// Watcher is the part of the spectator hub the watch screen uses.
type Watcher interface {
	Active() []spectator.ActivePlayer
	Subscribe(id string, bufferSize int) (*spectator.ChannelSession, error)
	Unsubscribe(id string, s *spectator.ChannelSession)
	SpectatorCount(id string) (int, error)
}

const (
	watchBuffer  = 8
	listInterval = time.Second
)

// watchEventMsg wraps a hub event with the session it came from, so events
// of a session that was already left can be ignored.
type watchEventMsg struct {
	session *spectator.ChannelSession
	evt     spectator.Event
}

type listRefreshMsg struct{}

// watchSlot remembers the open watch session so it can be closed when the
// terminal goes away without leaving the screen.
type watchSlot struct {
	mu      sync.Mutex
	session *spectator.ChannelSession
}

func (w *watchSlot) set(s *spectator.ChannelSession) {
	w.mu.Lock()
	w.session = s
	w.mu.Unlock()
}

// release closes the open session, if any.
func (w *watchSlot) release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session != nil {
		w.session.Close()
		w.session = nil
	}
}

// SpectateModel lists the live games and shows the one being watched.
type SpectateModel struct {
	hub       Watcher
	theme     Theme
	width     int
	height    int
	screen    *core.Screen
	keyMapper *KeyMapper

	players []spectator.ActivePlayer
	cursor  int

	slot     *watchSlot
	session  *spectator.ChannelSession
	watching spectator.ActivePlayer
	last     *spectator.SnapshotEvent
	over     *spectator.GameOverEvent
	closed   bool
	err      error

	backToMenu bool
	quitting   bool
}

// NewSpectateModel creates the watch screen.
func NewSpectateModel(hub Watcher, width, height int, theme Theme) SpectateModel {
	return newSpectateModel(hub, width, height, theme, &watchSlot{})
}

func newSpectateModel(hub Watcher, width, height int, theme Theme, slot *watchSlot) SpectateModel {
	if theme.Cells == nil {
		theme = DefaultTheme()
	}
	return SpectateModel{
		hub:       hub,
		theme:     theme,
		width:     width,
		height:    height,
		screen:    core.NewScreen(width, height),
		keyMapper: NewKeyMapper(),
		slot:      slot,
		players:   hub.Active(),
	}
}

// Init starts the periodic list refresh.
func (m SpectateModel) Init() tea.Cmd {
	return refreshList()
}

func refreshList() tea.Cmd {
	return tea.Tick(listInterval, func(time.Time) tea.Msg { return listRefreshMsg{} })
}

// waitForEvent reads the next event of s.
func waitForEvent(s *spectator.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return watchEventMsg{session: s, evt: evt}
		case <-s.Done():
			return watchEventMsg{session: s, evt: spectator.ClosedEvent{}}
		}
	}
}

// Update handles messages.
func (m SpectateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case listRefreshMsg:
		if m.session == nil {
			m.players = m.hub.Active()
			if m.cursor >= len(m.players) {
				m.cursor = max(len(m.players)-1, 0)
			}
		}
		return m, refreshList()
	case watchEventMsg:
		if msg.session != m.session {
			return m, nil
		}
		return m.handleEvent(msg.evt)
	}
	return m, nil
}

func (m SpectateModel) handleEvent(evt spectator.Event) (tea.Model, tea.Cmd) {
	switch e := evt.(type) {
	case spectator.SnapshotEvent:
		m.last = &e
		m.watching = e.Player
		if e.State.Status != snake.StatusGameOver {
			m.over = nil
		}
	case spectator.GameOverEvent:
		m.over = &e
	case spectator.ClosedEvent:
		m.closed = true
		return m, nil
	}
	return m, waitForEvent(m.session)
}

func (m SpectateModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if m.session != nil {
		if action == MenuActionBack {
			m.leave()
			m.players = m.hub.Active()
		}
		return m, nil
	}

	switch action {
	case MenuActionBack:
		m.backToMenu = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.players)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.players) == 0 {
			return m, nil
		}
		p := m.players[m.cursor]
		s, err := m.hub.Subscribe(p.ID, watchBuffer)
		if err != nil {
			m.err = err
			m.players = m.hub.Active()
			return m, nil
		}
		m.err = nil
		m.session = s
		m.slot.set(s)
		m.watching = p
		return m, waitForEvent(s)
	}
	return m, nil
}

// leave detaches from the watched game, if any.
func (m *SpectateModel) leave() {
	if m.session != nil {
		m.hub.Unsubscribe(m.watching.ID, m.session)
		m.slot.set(nil)
	}
	m.session = nil
	m.last = nil
	m.over = nil
	m.closed = false
}

// View renders the list or the watched board.
func (m SpectateModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if m.session != nil {
		return m.boardView()
	}
	return m.listView()
}

func (m SpectateModel) listView() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("LIVE GAMES"), m.width))
	b.WriteString("\n\n")

	if len(m.players) == 0 {
		b.WriteString(centerText(m.theme.Hint.Render("Nobody is playing right now."), m.width))
		b.WriteString("\n")
	}
	for i, p := range m.players {
		style := m.theme.Item
		cursor := "  "
		if i == m.cursor {
			style = m.theme.ItemActive
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-12s %-12s %6d", cursor, p.Username, p.Mode, p.Score)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Error.Render(m.err.Error()), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Hint.Render("Up/Down: Navigate  |  Enter: Watch  |  B: Back  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m SpectateModel) boardView() string {
	if m.last == nil {
		m.screen.Clear()
		m.screen.DrawTextCentered(m.screen.Height()/2, "Connecting...", core.ColorMuted)
		return RenderScreen(m.screen, m.theme)
	}

	count, _ := m.hub.SpectatorCount(m.watching.ID)
	footer := fmt.Sprintf("%d watching  B back  Q quit", count)
	snake.DrawBoard(m.screen, m.last.State, snake.BoardView{
		Title:   "Watching " + m.watching.Username,
		Elapsed: m.last.Elapsed,
		Footer:  footer,
		Demo:    true,
	})

	status := ""
	switch {
	case m.closed:
		status = "The game has ended. B: back"
	case m.over != nil:
		status = fmt.Sprintf("Game over with %d, next round in %s", m.over.Score, m.over.RestartDelay)
	}
	if status != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, status, core.ColorWarning)
	}
	return RenderScreen(m.screen, m.theme)
}

// Watching returns the player being watched, if any.
func (m SpectateModel) Watching() (spectator.ActivePlayer, bool) {
	return m.watching, m.session != nil
}

// BackToMenu reports whether the user asked to return to the menu.
func (m SpectateModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the user asked to quit entirely.
func (m SpectateModel) IsQuitting() bool {
	return m.quitting
}

// RunSpectate shows the live games in the local terminal.
func RunSpectate(hub Watcher, width, height int, theme Theme) (backToMenu bool, err error) {
	model := NewSpectateModel(hub, width, height, theme)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(SpectateModel)
	if !ok {
		return false, nil
	}
	m.leave()
	return m.BackToMenu(), nil
}
