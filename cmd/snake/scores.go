package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard",
	Long: `Display the top scores, for one mode or all modes together.

Examples:
  snake scores
  snake scores walls
  snake scores pass-through --limit 25
  snake scores walls --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores of the mode (all modes if none given)")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	title := "All modes"
	if len(args) == 1 {
		m, err := snake.ParseMode(args[0])
		if err != nil {
			return err
		}
		mode = string(m)
		title = m.Title()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared scores - %s\n", title)
		return nil
	}

	scores, err := store.TopScores(mode, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-12s  %-6s  %s\n", "Rank", "Player", "Score", "Mode", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-12s  %-6s  %s\n", "----", "------", "-----", "----", "----", "----")
	for _, e := range scores {
		secs := int(e.Duration.Seconds())
		fmt.Printf("  %-4d  %-16s  %-6d  %-12s  %-6s  %s\n",
			e.Rank, e.Username, e.Score, e.Mode,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if mode != "" {
		high, err := store.HighScore(mode)
		if err != nil {
			return err
		}
		fmt.Printf("Best in %s: %d\n", title, high)
		return nil
	}

	byMode, err := store.AllModeStats()
	if err != nil {
		return err
	}
	for _, m := range []snake.Mode{snake.ModeWalls, snake.ModePassThrough} {
		ms, ok := byMode[string(m)]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %d games, best %d, avg %.1f\n", m.Title(), ms.GamesCount, ms.HighScore, ms.AvgScore)
	}

	stats, err := store.GlobalStats()
	if err != nil {
		return err
	}
	fmt.Printf("%d players, %d games, best %d\n", stats.TotalPlayers, stats.TotalGames, stats.HighestScore)
	return nil
}
