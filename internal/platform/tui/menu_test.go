package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

func updateMenu(m MenuModel, msgs ...tea.Msg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuItems(t *testing.T) {
	with := NewMenuModel(core.DefaultConfig(), MenuOptions{Spectate: true})
	without := NewMenuModel(core.DefaultConfig(), MenuOptions{})

	if len(with.items) != len(without.items)+1 {
		t.Errorf("spectate entry: %d items vs %d", len(with.items), len(without.items))
	}
	last := with.items[len(with.items)-1]
	if last.Kind != MenuScores {
		t.Errorf("last item = %+v, expected high scores", last)
	}
	if with.items[len(with.items)-2].Kind != MenuSpectate {
		t.Error("live games entry should precede high scores")
	}

	ids := map[string]bool{}
	for _, item := range with.items {
		if item.Kind == MenuPlay {
			ids[item.GameID] = true
		}
	}
	for _, id := range []string{"snake", "snake_pass", "snake_demo"} {
		if !ids[id] {
			t.Errorf("menu is missing %q", id)
		}
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), MenuOptions{})
	m = updateMenu(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil {
		t.Fatal("Enter should end the menu")
	}
	if sel := m.Selected(); sel == nil || sel.GameID != m.items[0].GameID {
		t.Errorf("Selected() = %+v, expected the first item", sel)
	}
}

func TestMenuCursorClamps(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), MenuOptions{})
	for range 20 {
		m = updateMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuDifficulty(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), MenuOptions{Difficulty: config.DifficultyEasy})
	if m.Difficulty() != config.DifficultyEasy {
		t.Fatalf("Difficulty() = %q, expected easy", m.Difficulty())
	}

	m = updateMenu(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty() = %q, expected hard", m.Difficulty())
	}
	for range 5 {
		m = updateMenu(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.Difficulty() != config.DifficultyInsane {
		t.Errorf("Difficulty() = %q, expected insane", m.Difficulty())
	}
	if !strings.Contains(m.View(), "insane") {
		t.Error("view should show the difficulty")
	}

	if NewMenuModel(core.DefaultConfig(), MenuOptions{}).Difficulty() != config.DifficultyNormal {
		t.Error("default difficulty should be normal")
	}
}

func TestMenuScoreboardShortcut(t *testing.T) {
	m := updateMenu(NewMenuModel(core.DefaultConfig(), MenuOptions{}), tea.KeyMsg{Type: tea.KeyTab})
	if sel := m.Selected(); sel == nil || sel.Kind != MenuScores {
		t.Errorf("Selected() = %+v, expected high scores", sel)
	}
}

func TestMenuQuit(t *testing.T) {
	m := updateMenu(NewMenuModel(core.DefaultConfig(), MenuOptions{}), runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

func TestMenuResize(t *testing.T) {
	m := updateMenu(NewMenuModel(core.DefaultConfig(), MenuOptions{}), tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %+v, expected 120x40", cfg)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q", got)
	}
}
