package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/spectator"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play snake",
	Long: `Play a variant directly, or pick one from the menu when none is given.

Controls:
  Arrows/WASD/HJKL  - Steer
  Space             - Start, pause and resume
  P/Esc             - Pause
  M                 - Switch walls/pass-through before a game
  R                 - Restart after game over
  B                 - Back to the menu when not playing
  Q/Ctrl+C          - Quit

In the menu, Left/Right picks the difficulty and Tab opens the leaderboard.

Examples:
  snake play
  snake play snake_pass
  snake play snake --difficulty insane --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Name for saved scores (default: $USER)")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.GameOptions{
		Username: flagName,
		Theme:    tui.ThemeByName(flagTheme),
	}
	if opts.Username == "" {
		opts.Username = localUsername()
	}
	var lister tui.ScoreLister
	if store != nil {
		opts.Store = store
		lister = store
	}

	rt := runtimeConfig()

	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown variant %q, run 'snake list' to see them", args[0])
		}
		game, err := tui.CreateGame(args[0], cfg)
		if err != nil {
			return err
		}
		_, err = tui.Run(game, rt, opts)
		return err
	}

	return menuLoop(cfg, preset, rt, opts, lister)
}

// menuLoop shows the menu until the user quits. The local spectator hub is
// started the first time it is needed.
func menuLoop(cfg config.SnakeConfig, preset config.DifficultyPreset, rt core.RuntimeConfig, opts tui.GameOptions, store tui.ScoreLister) error {
	var hub *spectator.Hub
	defer func() {
		if hub != nil {
			hub.Stop()
		}
	}()

	for {
		result, err := tui.RunMenu(rt, tui.MenuOptions{
			Spectate:   true,
			Difficulty: preset,
			Theme:      opts.Theme,
		})
		if err != nil {
			return err
		}
		if result.Quit {
			return nil
		}
		rt = result.Config
		preset = result.Difficulty

		var back bool
		switch result.Item.Kind {
		case tui.MenuPlay:
			played := cfg
			config.ApplyPreset(&played, preset)
			game, err := tui.CreateGame(result.Item.GameID, played)
			if err != nil {
				return err
			}
			back, err = tui.Run(game, rt, opts)
			if err != nil {
				return err
			}

		case tui.MenuScores:
			back, err = tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH, opts.Theme)
			if err != nil {
				return err
			}

		case tui.MenuSpectate:
			if hub == nil {
				hub = spectator.New(spectator.FromConfig(cfg), nil, nil)
				if err := hub.Start(context.Background()); err != nil {
					return err
				}
			}
			back, err = tui.RunSpectate(hub, rt.ScreenW, rt.ScreenH, opts.Theme)
			if err != nil {
				return err
			}
		}

		if !back {
			return nil
		}
	}
}
