package httpapi

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/spectator"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ScoreRequest is the body of POST /leaderboards/scores. Duration is in
// seconds.
type ScoreRequest struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Mode     string `json:"mode"`
	Duration int    `json:"duration"`
}

// LeaderboardEntry is one ranked score.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Mode     string `json:"mode"`
	Duration int    `json:"duration"`
	Date     string `json:"date"`
}

func entryFromStorage(e storage.ScoreEntry) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:     e.Rank,
		Username: e.Username,
		Score:    e.Score,
		Mode:     e.Mode,
		Duration: int(e.Duration / time.Second),
		Date:     e.CreatedAt.Format(time.DateOnly),
	}
}

// RankResponse holds a user's rank, null when they have no games.
type RankResponse struct {
	Rank *int `json:"rank"`
}

// UserStats summarizes one player.
type UserStats struct {
	Username     string `json:"username"`
	HighScore    int    `json:"highScore"`
	GamesPlayed  int    `json:"gamesPlayed"`
	AverageScore int    `json:"averageScore"`
}

// GlobalStats summarizes the leaderboard.
type GlobalStats struct {
	TotalPlayers int `json:"totalPlayers"`
	TotalGames   int `json:"totalGames"`
	HighestScore int `json:"highestScore"`
}

// ActivePlayer is one game that can be watched.
type ActivePlayer struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"startedAt"`
}

func activeFromHub(p spectator.ActivePlayer) ActivePlayer {
	return ActivePlayer{
		ID:        p.ID,
		Username:  p.Username,
		Score:     p.Score,
		Mode:      string(p.Mode),
		StartedAt: p.StartedAt,
	}
}

// SpectatorCount is the number of watchers of one game.
type SpectatorCount struct {
	Count int `json:"count"`
}
