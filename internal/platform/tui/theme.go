package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Theme maps the semantic cell colors and menu elements to terminal styles.
type Theme struct {
	Name  string
	Cells map[core.Color]lipgloss.Style

	Title      lipgloss.Style
	Item       lipgloss.Style
	ItemActive lipgloss.Style
	Hint       lipgloss.Style
	Error      lipgloss.Style
}

// DefaultTheme returns the green-on-dark theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault:   lipgloss.NewStyle(),
			core.ColorBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			core.ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
			core.ColorSnakeHead: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true), // Lime
			core.ColorSnakeBody: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
			core.ColorFood:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Red
			core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			core.ColorAccent:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
			core.ColorWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
			core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Item:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	t.Name = "mono"
	t.Cells[core.ColorSnakeHead] = lipgloss.NewStyle().Bold(true)
	t.Cells[core.ColorSnakeBody] = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	t.Cells[core.ColorFood] = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	t.Cells[core.ColorAccent] = lipgloss.NewStyle().Bold(true)
	t.Cells[core.ColorWarning] = lipgloss.NewStyle().Bold(true).Underline(true)
	t.Title = lipgloss.NewStyle().Bold(true)
	t.ItemActive = lipgloss.NewStyle().Bold(true).Reverse(true)
	t.Error = lipgloss.NewStyle().Bold(true)
	return t
}

// ThemeByName returns the named theme, falling back to the default.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

func (t Theme) cell(c core.Color) lipgloss.Style {
	if s, ok := t.Cells[c]; ok {
		return s
	}
	return t.Cells[core.ColorDefault]
}
