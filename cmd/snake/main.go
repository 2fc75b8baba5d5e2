// snake is a terminal snake game with a shared leaderboard.
//
// Usage:
//
//	snake list              - List the game variants
//	snake play [variant]    - Play, or pick from the menu
//	snake spectate          - Watch computer players
//	snake scores [mode]     - Show the leaderboard
//	snake serve             - Serve over SSH and HTTP
//	snake config [path]     - Write the effective config
//
// Global flags:
//
//	--fps <rate>           - Set frame rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible games
//	--db <path>            - Set database path (default: ~/.snake/scores.db)
//	--config <path>        - Use a custom snake.yaml
//	--difficulty <preset>  - easy, normal, hard or insane
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the snake variants.
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagTheme      string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake in the terminal, with walls or pass-through edges, a shared
leaderboard and live autoplay games to watch.

Available commands:
  list      - Show the game variants
  play      - Play a variant, or pick one from the menu
  spectate  - Watch computer players
  scores    - View the leaderboard
  serve     - Start the SSH and HTTP servers
  config    - Write the effective configuration

Examples:
  snake play
  snake play snake_pass --difficulty hard
  snake scores walls
  snake serve --ssh :2222 --http :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, insane")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(spectateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
