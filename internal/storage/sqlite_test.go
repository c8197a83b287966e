package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		game  string
		level string
		score int
	}{
		{"platformer", "Meadow", 10},
		{"platformer", "Caves", 5},
		{"platformer", "Tower", 20},
		{"platformer_arena", "Arena", 50},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.game, r.level, r.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	expected := []struct {
		score int
		level string
	}{{20, "Tower"}, {10, "Meadow"}, {5, "Caves"}}
	for i, want := range expected {
		if scores[i].Score != want.score || scores[i].Level != want.level {
			t.Errorf("scores[%d] = %d on %q, expected %d on %q",
				i, scores[i].Score, scores[i].Level, want.score, want.level)
		}
		if scores[i].GameID != "platformer" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}

	arena, err := store.TopScores("platformer_arena", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(arena) != 1 {
		t.Errorf("Expected 1 arena score, got %d", len(arena))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "L", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limits fall back to 10.
	scores, err = store.TopScores("test", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(scores))
	}
}

func TestStoreTiesKeepInsertionOrder(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("test", "first", 7)
	store.SaveScore("test", "second", 7)

	scores, err := store.TopScores("test", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Level != "first" || scores[1].Level != "second" {
		t.Errorf("tie order = %q, %q", scores[0].Level, scores[1].Level)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveScore("platformer", "A", 100)
	store.SaveScore("platformer", "B", 300)
	store.SaveScore("platformer", "C", 200)

	high, err = store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("platformer", "A", 100)
	store.SaveScore("platformer", "A", 200)
	store.SaveScore("platformer_arena", "Arena", 300)

	if err := store.ClearScores("platformer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	campaign, _ := store.TopScores("platformer", 10)
	if len(campaign) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(campaign))
	}

	arena, _ := store.TopScores("platformer_arena", 10)
	if len(arena) != 1 {
		t.Errorf("Arena scores should not be affected by clearing the campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", "L", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() on empty mode failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 || stats.BestLevel != "" {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("platformer", "Meadow", 4)
	store.SaveScore("platformer", "Tower", 8)
	store.SaveScore("platformer_arena", "Arena", 30)

	stats, err = store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 8 || stats.TotalScore != 12 || stats.AvgScore != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BestLevel != "Tower" {
		t.Errorf("best level = %q, expected Tower", stats.BestLevel)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("last played not set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["platformer_arena"].HighScore != 30 {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
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
