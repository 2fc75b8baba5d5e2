// Package config loads the YAML configuration for the snake host: engine
// parameters, spectator hub, servers and presence backend.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SnakeConfig is the root of snake.yaml.
type SnakeConfig struct {
	Game      GameConfig      `yaml:"game"`
	Spectator SpectatorConfig `yaml:"spectator"`
	Server    ServerConfig    `yaml:"server"`
	Presence  PresenceConfig  `yaml:"presence"`
}

// GameConfig holds the engine parameters for new games.
type GameConfig struct {
	GridSize       int    `yaml:"grid_size"`
	InitialSpeed   int    `yaml:"initial_speed"`   // Tick interval in ms
	SpeedIncrement int    `yaml:"speed_increment"` // Ms removed per food
	Mode           string `yaml:"mode"`            // walls or pass-through
}

// SpectatorConfig controls the autoplay games shown to spectators.
type SpectatorConfig struct {
	Games        int           `yaml:"games"`
	RestartDelay time.Duration `yaml:"restart_delay"`
	Modes        []string      `yaml:"modes"` // Assigned round-robin
	Usernames    []string      `yaml:"usernames"`
}

// ServerConfig holds listen addresses for `snake serve`.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HTTPAddr    string        `yaml:"http_addr"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// PresenceConfig selects where active players are published.
type PresenceConfig struct {
	Backend  string        `yaml:"backend"` // memory or redis
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

// Presence backends.
const (
	PresenceMemory = "memory"
	PresenceRedis  = "redis"
)

// Validate reports every invalid setting.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Game.GridSize <= 0 {
		errs = append(errs, fmt.Errorf("game.grid_size must be positive, got %d", c.Game.GridSize))
	}
	if c.Game.InitialSpeed < snake.MinSpeed {
		errs = append(errs, fmt.Errorf("game.initial_speed must be at least %d, got %d", snake.MinSpeed, c.Game.InitialSpeed))
	}
	if c.Game.SpeedIncrement <= 0 {
		errs = append(errs, fmt.Errorf("game.speed_increment must be positive, got %d", c.Game.SpeedIncrement))
	}
	if _, err := snake.ParseMode(c.Game.Mode); err != nil {
		errs = append(errs, fmt.Errorf("game.mode: %w", err))
	}
	for _, m := range c.Spectator.Modes {
		if _, err := snake.ParseMode(m); err != nil {
			errs = append(errs, fmt.Errorf("spectator.modes: %w", err))
		}
	}
	if c.Spectator.Games < 0 {
		errs = append(errs, fmt.Errorf("spectator.games must not be negative, got %d", c.Spectator.Games))
	}
	switch c.Presence.Backend {
	case "", PresenceMemory, PresenceRedis:
	default:
		errs = append(errs, fmt.Errorf("presence.backend %q is not memory or redis", c.Presence.Backend))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ToEngine converts the game section to an engine Config.
// An unknown mode falls back to walls; Validate reports it.
func (c GameConfig) ToEngine() snake.Config {
	mode, _ := snake.ParseMode(c.Mode)
	return snake.Config{
		GridSize:       c.GridSize,
		InitialSpeed:   c.InitialSpeed,
		SpeedIncrement: c.SpeedIncrement,
		Mode:           mode,
	}
}

// SpectatorModes returns the parsed spectator modes, walls when none are set.
func (c SpectatorConfig) SpectatorModes() []snake.Mode {
	if len(c.Modes) == 0 {
		return []snake.Mode{snake.ModeWalls}
	}
	modes := make([]snake.Mode, 0, len(c.Modes))
	for _, m := range c.Modes {
		mode, _ := snake.ParseMode(m)
		modes = append(modes, mode)
	}
	return modes
}
