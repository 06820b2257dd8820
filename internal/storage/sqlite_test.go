package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
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

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("runner", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("HighScore() = %d after reopen, expected 42", high)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.trenches/x.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if got != filepath.Join(home, ".trenches", "x.db") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("runner", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("runner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	limited, err := store.TopScores("runner", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty history, got %d", high)
	}

	store.SaveScore("runner", 100)
	store.SaveScore("runner", 300)
	store.SaveScore("other", 900)

	if high, _ = store.HighScore("runner"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores("runner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("runner", 10); len(scores) != 0 {
		t.Errorf("Expected no runner scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Clearing one game must not touch another")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	for _, s := range []int{10, 20, 60} {
		store.SaveScore("runner", s)
	}
	stats, err = store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 60 || stats.TotalScore != 90 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 30 {
		t.Errorf("AvgScore = %v, expected 30", stats.AvgScore)
	}
}

func TestWeeklyScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	if _, ok, err := store.WeeklyScore(ctx, "alice", "2026-W43"); err != nil || ok {
		t.Fatalf("WeeklyScore() on empty table = ok %v, err %v", ok, err)
	}

	if err := store.InsertWeeklyScore(ctx, "alice", "2026-W43", 500, at); err != nil {
		t.Fatalf("InsertWeeklyScore() failed: %v", err)
	}
	if err := store.InsertWeeklyScore(ctx, "alice", "2026-W43", 700, at); err == nil {
		t.Error("second insert for the same wallet and week should fail")
	}
	if err := store.UpdateWeeklyScore(ctx, "alice", "2026-W43", 800, at.Add(time.Minute)); err != nil {
		t.Fatalf("UpdateWeeklyScore() failed: %v", err)
	}
	if err := store.UpdateWeeklyScore(ctx, "bob", "2026-W43", 1, at); err == nil {
		t.Error("update of a missing row should fail")
	}

	score, ok, err := store.WeeklyScore(ctx, "alice", "2026-W43")
	if err != nil || !ok || score != 800 {
		t.Errorf("WeeklyScore() = %d, %v, %v; expected 800", score, ok, err)
	}
}

func TestTopWeeklyAndCountAbove(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	rows := []struct {
		wallet string
		week   string
		score  int64
		offset time.Duration
	}{
		{"alice", "2026-W43", 300, 0},
		{"bob", "2026-W43", 900, time.Second},
		{"carol", "2026-W43", 900, 0},
		{"dave", "2026-W43", 100, 0},
		{"alice", "2026-W42", 5000, 0},
	}
	for _, r := range rows {
		if err := store.InsertWeeklyScore(ctx, r.wallet, r.week, r.score, at.Add(r.offset)); err != nil {
			t.Fatalf("InsertWeeklyScore() failed: %v", err)
		}
	}

	top, err := store.TopWeekly(ctx, "2026-W43", 3)
	if err != nil {
		t.Fatalf("TopWeekly() failed: %v", err)
	}
	var got []string
	for _, e := range top {
		got = append(got, e.Wallet)
	}
	// Equal scores: the earlier one ranks first.
	if strings.Join(got, ",") != "carol,bob,alice" {
		t.Errorf("TopWeekly() order = %v", got)
	}
	if !top[0].UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v, expected %v", top[0].UpdatedAt, at)
	}

	n, err := store.CountAbove(ctx, "2026-W43", 300)
	if err != nil {
		t.Fatalf("CountAbove() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountAbove(300) = %d, expected 2", n)
	}
	if n, _ := store.CountAbove(ctx, "2026-W43", 900); n != 0 {
		t.Errorf("CountAbove(900) = %d, expected 0", n)
	}

	weeks, err := store.Weeks(ctx)
	if err != nil {
		t.Fatalf("Weeks() failed: %v", err)
	}
	if strings.Join(weeks, ",") != "2026-W43,2026-W42" {
		t.Errorf("Weeks() = %v", weeks)
	}
}

func TestKV(t *testing.T) {
	store := openTestStore(t)
	local := store.KV("local")
	guest := store.KV("guest")

	if _, ok, err := local.Get("best_score"); err != nil || ok {
		t.Fatalf("Get() on empty namespace = ok %v, err %v", ok, err)
	}
	if err := local.Set("best_score", "120"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := local.Set("best_score", "340"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := local.Get("best_score")
	if err != nil || !ok || v != "340" {
		t.Errorf("Get() = %q, %v, %v; expected 340", v, ok, err)
	}
	if _, ok, _ := guest.Get("best_score"); ok {
		t.Error("profiles must not share keys")
	}
}
