package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type fakeScores struct {
	fakeSaver
	fakeLister
}

func newSession(t *testing.T, hub Watcher) SessionModel {
	t.Helper()
	scores := &fakeScores{fakeLister: fakeLister{entries: map[string][]storage.ScoreEntry{}}}
	return NewSessionModel(SessionOptions{
		Config:   config.DefaultSnakeConfig(),
		Store:    scores,
		Hub:      hub,
		Username: "tester",
	}, core.DefaultConfig())
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(SessionModel)
	}
	return m, cmd
}

func TestSessionPlayAndBack(t *testing.T) {
	m := newSession(t, nil)
	if m.Screen() != "menu" {
		t.Fatalf("Screen() = %q, expected menu", m.Screen())
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != "game" {
		t.Fatalf("Screen() = %q after Enter, expected game", m.Screen())
	}
	if cmd == nil {
		t.Error("starting a game should schedule the first frame")
	}
	if m.game.opts.Username != "tester" || m.game.opts.Store == nil {
		t.Errorf("game options = %+v", m.game.opts)
	}

	// The game has not started yet, so B returns to the menu.
	m, _ = send(t, m, runeKey("b"))
	if m.Screen() != "menu" || m.quitting {
		t.Errorf("Screen() = %q quitting=%v, expected menu", m.Screen(), m.quitting)
	}
}

func TestSessionDifficultyCarriesOver(t *testing.T) {
	m := newSession(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.opts.Difficulty != config.DifficultyHard {
		t.Errorf("Difficulty = %q, expected hard", m.opts.Difficulty)
	}

	m, _ = send(t, m, runeKey("b"))
	if m.menu.Difficulty() != config.DifficultyHard {
		t.Errorf("menu difficulty = %q after returning, expected hard", m.menu.Difficulty())
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newSession(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Screen() != "scores" {
		t.Fatalf("Screen() = %q, expected scores", m.Screen())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.Screen() != "menu" {
		t.Errorf("Screen() = %q, expected menu", m.Screen())
	}
}

func TestSessionSpectate(t *testing.T) {
	hub := startTestHub(t)
	m := newSession(t, hub)

	// Live games sit just above high scores.
	for range len(m.menu.items) - 2 {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != "spectate" || cmd == nil {
		t.Fatalf("Screen() = %q, expected spectate", m.Screen())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	player, watching := m.spectate.Watching()
	if !watching || player.Username != "Alpha" {
		t.Fatalf("Watching() = %+v, %v, expected Alpha", player, watching)
	}
	m.Close()
	if m.slot.session != nil {
		t.Error("Close() should release the watch session")
	}

	m, _ = send(t, m, runeKey("b"), runeKey("b"))
	if m.Screen() != "menu" {
		t.Errorf("Screen() = %q, expected menu", m.Screen())
	}
}

func TestSessionNoHubHidesSpectate(t *testing.T) {
	m := newSession(t, nil)
	for _, item := range m.menu.items {
		if item.Kind == MenuSpectate {
			t.Error("live games entry shown without a hub")
		}
	}
}

func TestSessionQuit(t *testing.T) {
	m := newSession(t, nil)
	m, cmd := send(t, m, runeKey("q"))
	if !m.quitting || cmd == nil || m.View() != "" {
		t.Error("q should end the session")
	}
}
