package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, username, mode string, score int) ScoreEntry {
	t.Helper()
	e, err := store.SaveScore(ScoreSubmission{Username: username, Mode: mode, Score: score, Duration: 30 * time.Second})
	if err != nil {
		t.Fatalf("SaveScore(%s, %s, %d) failed: %v", username, mode, score, err)
	}
	return e
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveReturnsRankedEntry(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, "alice", "walls", 100)
	if first.Rank != 1 {
		t.Errorf("first entry rank = %d, expected 1", first.Rank)
	}
	if first.Username != "alice" || first.Mode != "walls" || first.Score != 100 {
		t.Errorf("entry = %+v", first)
	}
	if first.Duration != 30*time.Second {
		t.Errorf("Duration = %v, expected 30s", first.Duration)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	if e := mustSave(t, store, "bob", "walls", 200); e.Rank != 1 {
		t.Errorf("higher score rank = %d, expected 1", e.Rank)
	}
	if e := mustSave(t, store, "carol", "walls", 50); e.Rank != 3 {
		t.Errorf("lowest score rank = %d, expected 3", e.Rank)
	}
	// Ties rank behind earlier submissions
	if e := mustSave(t, store, "dave", "walls", 100); e.Rank != 3 {
		t.Errorf("tied score rank = %d, expected 3", e.Rank)
	}
	// Other modes do not count
	if e := mustSave(t, store, "erin", "pass-through", 10); e.Rank != 1 {
		t.Errorf("other mode rank = %d, expected 1", e.Rank)
	}
}

func TestStoreSaveRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreSubmission{Mode: "walls", Score: 10}); err == nil {
		t.Error("SaveScore without username should fail")
	}
	if _, err := store.SaveScore(ScoreSubmission{Username: "x", Mode: "walls", Score: -1}); err == nil {
		t.Error("SaveScore with negative score should fail")
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "a", "walls", 100)
	mustSave(t, store, "b", "walls", 50)
	mustSave(t, store, "c", "walls", 200)
	mustSave(t, store, "d", "pass-through", 500)

	scores, err := store.TopScores("walls", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	expected := []int{200, 100, 50}
	for i, e := range scores {
		if e.Score != expected[i] || e.Rank != i+1 {
			t.Errorf("scores[%d] = %d rank %d, expected %d rank %d", i, e.Score, e.Rank, expected[i], i+1)
		}
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 || all[0].Mode != "pass-through" {
		t.Errorf("TopScores(all) = %+v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		mustSave(t, store, "p", "walls", (i+1)*10)
	}

	scores, err := store.TopScores("walls", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 150 || scores[2].Score != 130 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	def, _ := store.TopScores("walls", 0)
	if len(def) != 10 {
		t.Errorf("default limit returned %d rows, expected 10", len(def))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("walls")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty board, got %d", high)
	}

	mustSave(t, store, "a", "walls", 100)
	mustSave(t, store, "a", "walls", 300)
	mustSave(t, store, "a", "pass-through", 900)

	if high, _ = store.HighScore("walls"); high != 300 {
		t.Errorf("HighScore(walls) = %d, expected 300", high)
	}
	if high, _ = store.HighScore(""); high != 900 {
		t.Errorf("HighScore(all) = %d, expected 900", high)
	}
}

func TestStoreUserRank(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "alice", "walls", 300)
	mustSave(t, store, "bob", "walls", 500)
	mustSave(t, store, "alice", "walls", 100)
	mustSave(t, store, "alice", "pass-through", 50)
	mustSave(t, store, "carol", "pass-through", 80)

	tests := []struct {
		username string
		expected int
	}{
		{"bob", 1},
		{"alice", 2}, // best is 300 in walls
		{"carol", 1},
	}
	for _, tc := range tests {
		rank, err := store.UserRank(tc.username)
		if err != nil {
			t.Fatalf("UserRank(%s) failed: %v", tc.username, err)
		}
		if rank != tc.expected {
			t.Errorf("UserRank(%s) = %d, expected %d", tc.username, rank, tc.expected)
		}
	}

	if _, err := store.UserRank("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserRank(nobody) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreUserStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "alice", "walls", 100)
	mustSave(t, store, "alice", "walls", 200)
	mustSave(t, store, "alice", "pass-through", 40)
	mustSave(t, store, "bob", "walls", 999)

	stats, err := store.UserStats("alice")
	if err != nil {
		t.Fatalf("UserStats() failed: %v", err)
	}
	if stats.GamesPlayed != 3 || stats.HighScore != 200 || stats.AverageScore != 113 {
		t.Errorf("UserStats(alice) = %+v, expected 3 games, high 200, avg 113", stats)
	}

	if _, err := store.UserStats("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserStats(nobody) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreGlobalStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GlobalStats()
	if err != nil {
		t.Fatalf("GlobalStats() failed: %v", err)
	}
	if empty != (GlobalStats{}) {
		t.Errorf("GlobalStats() on empty board = %+v", empty)
	}

	mustSave(t, store, "alice", "walls", 100)
	mustSave(t, store, "alice", "walls", 250)
	mustSave(t, store, "bob", "pass-through", 80)

	stats, err := store.GlobalStats()
	if err != nil {
		t.Fatalf("GlobalStats() failed: %v", err)
	}
	expected := GlobalStats{TotalPlayers: 2, TotalGames: 3, HighestScore: 250}
	if stats != expected {
		t.Errorf("GlobalStats() = %+v, expected %+v", stats, expected)
	}
}

func TestStoreAllModeStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "a", "walls", 100)
	mustSave(t, store, "b", "walls", 300)
	mustSave(t, store, "c", "pass-through", 40)

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	walls := stats["walls"]
	if walls.GamesCount != 2 || walls.HighScore != 300 || walls.AvgScore != 200 {
		t.Errorf("walls stats = %+v", walls)
	}
	if stats["pass-through"].GamesCount != 1 {
		t.Errorf("pass-through stats = %+v", stats["pass-through"])
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "a", "walls", 100)
	mustSave(t, store, "a", "walls", 200)
	mustSave(t, store, "a", "pass-through", 300)

	if err := store.ClearScores("walls"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if walls, _ := store.TopScores("walls", 10); len(walls) != 0 {
		t.Errorf("Expected 0 walls scores after clear, got %d", len(walls))
	}
	if pt, _ := store.TopScores("pass-through", 10); len(pt) != 1 {
		t.Error("pass-through scores should not be affected by clearing walls")
	}

	if err := store.ClearScores(""); err != nil {
		t.Fatalf("ClearScores(all) failed: %v", err)
	}
	if all, _ := store.TopScores("", 10); len(all) != 0 {
		t.Errorf("Expected empty board, got %d entries", len(all))
	}
}
