// Package httpapi serves the leaderboard, statistics and spectator listings
// as JSON under /api/v1.
package httpapi

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-snake/internal/presence"
	"github.com/vovakirdan/tui-snake/internal/spectator"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Leaderboard is the part of the score store the API reads and writes.
type Leaderboard interface {
	SaveScore(sub storage.ScoreSubmission) (storage.ScoreEntry, error)
	TopScores(mode string, limit int) ([]storage.ScoreEntry, error)
	UserRank(username string) (int, error)
	UserStats(username string) (storage.UserStats, error)
	GlobalStats() (storage.GlobalStats, error)
}

// Spectators is the part of the spectator hub the API reads.
type Spectators interface {
	Active() []spectator.ActivePlayer
	Get(id string) (spectator.GameView, error)
	SpectatorCount(id string) (int, error)
}

// PresenceLister lists players published by any host.
type PresenceLister interface {
	List(ctx context.Context) ([]presence.Player, error)
}

// RouterConfig holds the router dependencies. Presence is optional; without
// it the active list comes from the local hub.
type RouterConfig struct {
	Logger      *log.Logger
	Leaderboard Leaderboard
	Spectators  Spectators
	Presence    PresenceLister
}

// NewRouter creates the API router with all routes configured.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	h := &handler{
		scores:    cfg.Leaderboard,
		spectator: cfg.Spectators,
		presence:  cfg.Presence,
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Recovery(cfg.Logger))
	api.Use(Logging(cfg.Logger))
	api.NotFoundHandler = http.HandlerFunc(notFound)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api.HandleFunc("/leaderboards", h.topScores).Methods(http.MethodGet)
	api.HandleFunc("/leaderboards/scores", h.submitScore).Methods(http.MethodPost)
	api.HandleFunc("/leaderboards/rank/{username}", h.userRank).Methods(http.MethodGet)

	api.HandleFunc("/stats/global", h.globalStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/user/{username}", h.userStats).Methods(http.MethodGet)

	api.HandleFunc("/spectator/active", h.activePlayers).Methods(http.MethodGet)
	api.HandleFunc("/spectator/{id}", h.watchPlayer).Methods(http.MethodGet)
	api.HandleFunc("/spectator/{id}/count", h.spectatorCount).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, errRoute)
}
