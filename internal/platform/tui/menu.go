package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// MenuKind says what a menu entry opens.
type MenuKind int

const (
	MenuPlay MenuKind = iota
	MenuSpectate
	MenuScores
)

// MenuItem is one selectable menu entry.
type MenuItem struct {
	Kind        MenuKind
	GameID      string // MenuPlay only
	Title       string
	Description string
}

// MenuOptions configures the menu entries.
type MenuOptions struct {
	Spectate   bool // Show the live games entry
	Difficulty config.DifficultyPreset
	Theme      Theme
}

// MenuModel is the main menu: variants, live games and high scores, with a
// difficulty selector on left/right.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int
	width      int
	height     int
	config     core.RuntimeConfig
	theme      Theme
	keyMapper  *KeyMapper
	quitting   bool
	selected   *MenuItem
}

// NewMenuModel creates the menu.
func NewMenuModel(cfg core.RuntimeConfig, opts MenuOptions) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)
	for _, g := range games {
		items = append(items, MenuItem{Kind: MenuPlay, GameID: g.ID, Title: g.Title, Description: g.Description})
	}
	if opts.Spectate {
		items = append(items, MenuItem{Kind: MenuSpectate, Title: "Watch live games", Description: "Spectate the computer players"})
	}
	items = append(items, MenuItem{Kind: MenuScores, Title: "High scores", Description: "Leaderboard by mode"})

	difficulty := 1
	for i, p := range config.Presets {
		if p == opts.Difficulty {
			difficulty = i
		}
	}
	if opts.Theme.Cells == nil {
		opts.Theme = DefaultTheme()
	}

	return MenuModel{
		items:      items,
		difficulty: difficulty,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		theme:      opts.Theme,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.difficulty > 0 {
			m.difficulty--
		}
	case MenuActionRight:
		if m.difficulty < len(config.Presets)-1 {
			m.difficulty++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.selected = &MenuItem{Kind: MenuScores}
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("S N A K E"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		style := m.theme.Item
		cursor := "  "
		if i == m.cursor {
			style = m.theme.ItemActive
			cursor = "> "
		}
		b.WriteString(centerText(style.Render(cursor+item.Title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.items) > 0 {
		b.WriteString(centerText(m.theme.Hint.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}
	preset := config.Presets[m.difficulty]
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >  (%dms)", preset, preset.InitialSpeed()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Hint.Render("Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen entry, or nil if none.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the preset shown in the selector.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return config.Presets[m.difficulty]
}

// IsQuitting reports whether the user left the menu.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring printable cells only.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the outcome of RunMenu.
type MenuResult struct {
	Item       *MenuItem
	Difficulty config.DifficultyPreset
	Config     core.RuntimeConfig
	Quit       bool
}

// RunMenu shows the menu in the local terminal.
func RunMenu(cfg core.RuntimeConfig, opts MenuOptions) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	result := MenuResult{
		Item:       m.Selected(),
		Difficulty: m.Difficulty(),
		Config:     m.Config(),
	}
	result.Quit = m.IsQuitting() || result.Item == nil
	return result, nil
}
