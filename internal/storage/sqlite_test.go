package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panelpop/panelpop/internal/versus"
)

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
	_, err = store.SaveScore("solo", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("solo", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("solo", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different mode
	_, err = store.SaveScore("versus", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for solo
	scores, err := store.TopScores("solo", 10)
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

	// Retrieve top scores for versus
	vsScores, err := store.TopScores("versus", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(vsScores) != 1 {
		t.Errorf("Expected 1 versus score, got %d", len(vsScores))
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
		store.SaveScore("solo", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("solo", 3)
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
	high, err := store.HighScore("solo")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	// Add scores
	store.SaveScore("solo", 100)
	store.SaveScore("solo", 300)
	store.SaveScore("solo", 200)

	high, err = store.HighScore("solo")
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

	store.SaveScore("solo", 100)
	store.SaveScore("solo", 200)
	store.SaveScore("versus", 300)

	// Clear only solo scores
	err = store.ClearScores("solo")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Solo should be empty
	soloScores, _ := store.TopScores("solo", 10)
	if len(soloScores) != 0 {
		t.Errorf("Expected 0 solo scores after clear, got %d", len(soloScores))
	}

	// Versus should still have scores
	vsScores, _ := store.TopScores("versus", 10)
	if len(vsScores) != 1 {
		t.Errorf("Versus scores should not be affected by clearing solo")
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

	for i := 0; i < 20; i++ {
		store.SaveScore("solo", i*10)
	}

	scores, err := store.AllScores("solo")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}

	// Descending order throughout
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("Scores not sorted descending at index %d: %d > %d",
				i, scores[i].Score, scores[i-1].Score)
		}
	}
}

func TestStoreCreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dirs", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveVersusMatch(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveVersusMatch(VersusMatch{
		MatchID:    "vs-42",
		Difficulty: "normal",
		Winner:     1,
		Score1:     1200,
		Score2:     800,
		EndReason:  "topped out",
		Duration:   95,
	})
	if err != nil {
		t.Fatalf("SaveVersusMatch() failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero insert ID")
	}

	matches, err := store.RecentVersusMatches(10)
	if err != nil {
		t.Fatalf("RecentVersusMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	m := matches[0]
	if m.MatchID != "vs-42" {
		t.Errorf("MatchID = %q, want vs-42", m.MatchID)
	}
	if m.Difficulty != "normal" {
		t.Errorf("Difficulty = %q, want normal", m.Difficulty)
	}
	if m.Winner != 1 {
		t.Errorf("Winner = %d, want 1", m.Winner)
	}
	if m.Score1 != 1200 || m.Score2 != 800 {
		t.Errorf("Scores = %d/%d, want 1200/800", m.Score1, m.Score2)
	}
	if m.EndReason != "topped out" {
		t.Errorf("EndReason = %q, want topped out", m.EndReason)
	}
	if m.Duration != 95 {
		t.Errorf("Duration = %d, want 95", m.Duration)
	}
}

func TestStoreRecentVersusMatchesOrder(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		store.SaveVersusMatch(VersusMatch{
			MatchID:    "vs-" + string(rune('a'+i)),
			Difficulty: "easy",
			Winner:     2,
			EndReason:  "topped out",
		})
	}

	matches, err := store.RecentVersusMatches(3)
	if err != nil {
		t.Fatalf("RecentVersusMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(matches))
	}

	// Most recent first
	if matches[0].MatchID != "vs-e" {
		t.Errorf("Expected newest match first, got %q", matches[0].MatchID)
	}
}

func TestStoreVersusRecord(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Empty record
	wins, losses, draws, err := store.VersusRecord()
	if err != nil {
		t.Fatalf("VersusRecord() failed: %v", err)
	}
	if wins != 0 || losses != 0 || draws != 0 {
		t.Errorf("Expected empty record, got %d/%d/%d", wins, losses, draws)
	}

	store.SaveVersusMatch(VersusMatch{MatchID: "a", Difficulty: "easy", Winner: 1, EndReason: "topped out"})
	store.SaveVersusMatch(VersusMatch{MatchID: "b", Difficulty: "easy", Winner: 1, EndReason: "forfeit"})
	store.SaveVersusMatch(VersusMatch{MatchID: "c", Difficulty: "easy", Winner: 2, EndReason: "topped out"})
	store.SaveVersusMatch(VersusMatch{MatchID: "d", Difficulty: "easy", Winner: 0, EndReason: "topped out"})

	wins, losses, draws, err = store.VersusRecord()
	if err != nil {
		t.Fatalf("VersusRecord() failed: %v", err)
	}
	if wins != 2 || losses != 1 || draws != 1 {
		t.Errorf("Record = %d/%d/%d, want 2/1/1", wins, losses, draws)
	}
}

func TestStoreSaveVersusResult(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	err = store.SaveVersusResult(versus.Result{
		MatchID:    "vs-99",
		Difficulty: "hard",
		Reason:     versus.EndReasonForfeit,
		Winner:     versus.Player2,
		Score1:     300,
		Score2:     450,
		Duration:   42.7,
	})
	if err != nil {
		t.Fatalf("SaveVersusResult() failed: %v", err)
	}

	matches, err := store.RecentVersusMatches(1)
	if err != nil {
		t.Fatalf("RecentVersusMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	m := matches[0]
	if m.MatchID != "vs-99" {
		t.Errorf("MatchID = %q, want vs-99", m.MatchID)
	}
	if m.Winner != int(versus.Player2) {
		t.Errorf("Winner = %d, want %d", m.Winner, versus.Player2)
	}
	if m.EndReason != "forfeit" {
		t.Errorf("EndReason = %q, want forfeit", m.EndReason)
	}
	if m.Duration != 42 {
		t.Errorf("Duration = %d, want 42", m.Duration)
	}
}

func TestStoreGetModeStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Empty stats
	stats, err := store.GetModeStats("solo")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore("solo", 100)
	store.SaveScore("solo", 200)
	store.SaveScore("solo", 300)

	stats, err = store.GetModeStats("solo")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, want 3", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %f, want 200", stats.AvgScore)
	}
	if stats.TotalScore != 600 {
		t.Errorf("TotalScore = %d, want 600", stats.TotalScore)
	}
}
