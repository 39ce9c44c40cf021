package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("starfield", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("starfield", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("starfield", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("starfield_physics", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for starfield
	scores, err := store.TopScores("starfield", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for the physics variant
	physicsScores, err := store.TopScores("starfield_physics", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(physicsScores) != 1 {
		t.Errorf("Expected 1 physics score, got %d", len(physicsScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("starfield")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("starfield", 100)
	store.SaveScore("starfield", 300)
	store.SaveScore("starfield", 200)

	high, err = store.HighScore("starfield")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("starfield", 100)
	store.SaveScore("starfield", 200)
	store.SaveScore("starfield_physics", 300)

	// Clear only starfield scores
	err = store.ClearScores("starfield")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Starfield should be empty
	starfieldScores, _ := store.TopScores("starfield", 10)
	if len(starfieldScores) != 0 {
		t.Errorf("Expected 0 starfield scores after clear, got %d", len(starfieldScores))
	}

	// Physics should still have scores
	physicsScores, _ := store.TopScores("starfield_physics", 10)
	if len(physicsScores) != 1 {
		t.Errorf("Physics scores should not be affected by clearing starfield")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveRun(Run{GameID: "starfield", Player: "alice", Score: 42, Ticks: 600})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("run id %q is not a UUID: %v", runID, err)
	}

	got, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.Player != "alice" || got.Score != 42 || got.Ticks != 600 || got.GameID != "starfield" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStoreSaveRunDefaults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Score: 1}); err == nil {
		t.Error("expected error for run without game id")
	}

	runID, err := store.SaveRun(Run{GameID: "starfield", Score: 7})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, _ := store.RunByID(runID)
	if got == nil || got.Player != LocalPlayer {
		t.Errorf("expected local player, got %+v", got)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	id := uuid.NewString()

	if _, err := store.SaveRun(Run{RunID: id, GameID: "starfield", Score: 1}); err != nil {
		t.Fatalf("first SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{RunID: id, GameID: "starfield", Score: 2}); err == nil {
		t.Error("expected error for duplicate run id")
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "starfield", Player: "bob", Score: 5})
	store.SaveRun(Run{GameID: "starfield_physics", Player: "bob", Score: 50})
	store.SaveRun(Run{GameID: "starfield", Player: "carol", Score: 9})

	scores, err := store.PlayerScores("bob", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores for bob, got %d", len(scores))
	}
	// Most recent first
	if scores[0].GameID != "starfield_physics" {
		t.Errorf("Expected newest run first, got %+v", scores[0])
	}
}

func TestStorePlayerTopScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "starfield", Player: "bob", Score: 5})
	store.SaveRun(Run{GameID: "starfield", Player: "bob", Score: 12})
	store.SaveRun(Run{GameID: "starfield", Player: "carol", Score: 40})
	store.SaveRun(Run{GameID: "starfield_physics", Player: "bob", Score: 90})

	scores, err := store.PlayerTopScores("starfield", "bob", 10)
	if err != nil {
		t.Fatalf("PlayerTopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].Score != 12 || scores[1].Score != 5 {
		t.Errorf("Expected scores [12 5], got [%d %d]", scores[0].Score, scores[1].Score)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("starfield")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(Run{GameID: "starfield", Player: "a", Score: 10})
	store.SaveRun(Run{GameID: "starfield", Player: "b", Score: 30})
	store.SaveRun(Run{GameID: "starfield", Player: "a", Score: 20})
	store.SaveRun(Run{GameID: "starfield_physics", Score: 100})

	stats, err = store.GetGameStats("starfield")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 30 || stats.TotalScore != 60 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("Expected average 20, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["starfield_physics"].HighScore != 100 {
		t.Errorf("Unexpected all-games stats: %+v", all)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SaveRun(Run{GameID: "starfield", Score: score}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent SaveRun() failed: %v", err)
	}
}
