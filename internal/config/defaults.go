package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration. It matches
// defaults/snake.yaml and is used when that cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Game: GameConfig{
			GridSize:       20,
			InitialSpeed:   150,
			SpeedIncrement: 2,
			Mode:           "walls",
		},
		Spectator: SpectatorConfig{
			Games:        3,
			RestartDelay: 2 * time.Second,
			Modes:        []string{"walls", "pass-through"},
			Usernames:    []string{"SnakeMaster", "ViperQueen", "PythonPro", "CobraKing", "AnacondaAce"},
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HTTPAddr:    ":8080",
			HostKeyPath: "~/.snake/ssh_host_ed25519",
			IdleTimeout: 30 * time.Minute,
			MaxTimeout:  2 * time.Hour,
		},
		Presence: PresenceConfig{
			Backend:  PresenceMemory,
			RedisURL: "redis://localhost:6379/0",
			TTL:      30 * time.Second,
		},
	}
}
