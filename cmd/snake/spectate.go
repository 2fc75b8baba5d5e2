package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/spectator"
)

var spectateCmd = &cobra.Command{
	Use:   "spectate",
	Short: "Watch computer players",
	Long: `Start the autoplay games from snake.yaml locally and watch them.

Controls:
  Up/Down  - Pick a game
  Enter    - Watch it
  B/Esc    - Back to the list
  Q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runSpectate,
}

func runSpectate(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	hubCfg := spectator.FromConfig(cfg)
	if flagSeed != 0 {
		hubCfg.Seed = flagSeed
	}
	hub := spectator.New(hubCfg, nil, nil)
	if err := hub.Start(context.Background()); err != nil {
		return err
	}
	defer hub.Stop()

	rt := runtimeConfig()
	_, err = tui.RunSpectate(hub, rt.ScreenW, rt.ScreenH, tui.ThemeByName(flagTheme))
	return err
}
