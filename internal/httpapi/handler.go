package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const maxLimit = 100

type handler struct {
	scores    Leaderboard
	spectator Spectators
	presence  PresenceLister
}

// topScores handles GET /leaderboards?mode=&limit=
func (h *handler) topScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := q.Get("mode")
	if mode != "" {
		m, err := snake.ParseMode(mode)
		if err != nil {
			writeError(w, invalid(err.Error()))
			return
		}
		mode = string(m)
	}

	limit := 10
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, invalid("limit must be a positive integer"))
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := h.scores.TopScores(mode, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, entryFromStorage(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// submitScore handles POST /leaderboards/scores
func (h *handler) submitScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, invalid("invalid JSON body"))
		return
	}
	if req.Username == "" {
		writeError(w, invalid("username is required"))
		return
	}
	if req.Score < 0 || req.Duration < 0 {
		writeError(w, invalid("score and duration must not be negative"))
		return
	}
	mode, err := snake.ParseMode(req.Mode)
	if err != nil {
		writeError(w, invalid(err.Error()))
		return
	}

	entry, err := h.scores.SaveScore(storage.ScoreSubmission{
		Username: req.Username,
		Mode:     string(mode),
		Score:    req.Score,
		Duration: time.Duration(req.Duration) * time.Second,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryFromStorage(entry))
}

// userRank handles GET /leaderboards/rank/{username}
func (h *handler) userRank(w http.ResponseWriter, r *http.Request) {
	rank, err := h.scores.UserRank(mux.Vars(r)["username"])
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusOK, RankResponse{})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RankResponse{Rank: &rank})
}

// globalStats handles GET /stats/global
func (h *handler) globalStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.scores.GlobalStats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GlobalStats{
		TotalPlayers: stats.TotalPlayers,
		TotalGames:   stats.TotalGames,
		HighestScore: stats.HighestScore,
	})
}

// userStats handles GET /stats/user/{username}
func (h *handler) userStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scores.UserStats(mux.Vars(r)["username"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserStats{
		Username:     stats.Username,
		HighScore:    stats.HighScore,
		GamesPlayed:  stats.GamesPlayed,
		AverageScore: stats.AverageScore,
	})
}

// activePlayers handles GET /spectator/active
func (h *handler) activePlayers(w http.ResponseWriter, r *http.Request) {
	resp := []ActivePlayer{}

	if h.presence != nil {
		players, err := h.presence.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		for _, p := range players {
			resp = append(resp, ActivePlayer{
				ID:        p.ID,
				Username:  p.Username,
				Score:     p.Score,
				Mode:      p.Mode,
				StartedAt: p.StartedAt,
			})
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if h.spectator != nil {
		for _, p := range h.spectator.Active() {
			resp = append(resp, activeFromHub(p))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// watchPlayer handles GET /spectator/{id}
func (h *handler) watchPlayer(w http.ResponseWriter, r *http.Request) {
	if h.spectator == nil {
		writeError(w, errRoute)
		return
	}
	view, err := h.spectator.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activeFromHub(view.Player))
}

// spectatorCount handles GET /spectator/{id}/count
func (h *handler) spectatorCount(w http.ResponseWriter, r *http.Request) {
	if h.spectator == nil {
		writeError(w, errRoute)
		return
	}
	n, err := h.spectator.SpectatorCount(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SpectatorCount{Count: n})
}
