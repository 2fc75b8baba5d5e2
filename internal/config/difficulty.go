package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset is a named starting speed.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyInsane DifficultyPreset = "insane"
)

// Presets lists the difficulty presets from slowest to fastest.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyInsane}

// InitialSpeed returns the tick interval in ms for the preset.
func (p DifficultyPreset) InitialSpeed() int {
	switch p {
	case DifficultyEasy:
		return 200
	case DifficultyHard:
		return 100
	case DifficultyInsane:
		return 70
	default:
		return 150
	}
}

// ParseDifficulty validates a preset name. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q", s)
}

// ApplyPreset overrides the initial speed with the preset's.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Game.InitialSpeed = preset.InitialSpeed()
}
