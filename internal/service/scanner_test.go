package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"phishhook/internal/storage"
)

func setupMiniredis(t *testing.T) *storage.Storage {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &storage.Storage{Client: client}
}

func TestScannerScan(t *testing.T) {
	store := setupMiniredis(t)
	history := NewHistory(10)
	s := NewScanner(testEngine(), history, nil, store)

	rec, analysis, err := s.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if rec.URL != "https://example.com" || !rec.IsSafe {
		t.Errorf("record = %+v", rec)
	}
	if analysis.Score != 100 {
		t.Errorf("Score = %d, want 100 for known legitimate host", analysis.Score)
	}
	if rec.Timestamp == 0 {
		t.Error("timestamp not set")
	}
	if history.Size() != 1 {
		t.Errorf("history size = %d, want 1", history.Size())
	}

	archived, err := store.RecentScans(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentScans failed: %v", err)
	}
	if len(archived) != 1 || archived[0].URL != rec.URL {
		t.Errorf("archive = %+v", archived)
	}
}

func TestScannerInvalidURL(t *testing.T) {
	history := NewHistory(10)
	s := NewScanner(testEngine(), history, nil, nil)

	_, _, err := s.Scan(context.Background(), "not-a-url")
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("err = %v, want ErrInvalidURL", err)
	}
	if history.Size() != 0 {
		t.Error("rejected input reached the history store")
	}
}

func TestScannerArchiveFailureIsAbsorbed(t *testing.T) {
	// Unreachable Redis: the scan must still succeed and be recorded.
	bad := &storage.Storage{Client: redis.NewClient(&redis.Options{Addr: "localhost:1"})}
	history := NewHistory(10)
	s := NewScanner(testEngine(), history, nil, bad)

	_, _, err := s.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Scan failed on archive error: %v", err)
	}
	if history.Size() != 1 {
		t.Errorf("history size = %d, want 1", history.Size())
	}
}

func TestScannerPublishes(t *testing.T) {
	history := NewHistory(10)
	hub := NewHub(history)
	dial := hubServer(t, hub)
	s := NewScanner(testEngine(), history, hub, nil)

	conn := dial()
	if ev := readEvent(t, conn); ev.Type != "history" {
		t.Fatalf("expected history event, got %s", ev.Type)
	}
	waitForCount(t, hub, 1)

	if _, _, err := s.Scan(context.Background(), "https://example.com"); err != nil {
		t.Fatal(err)
	}
	ev := readEvent(t, conn)
	data, _ := ev.Data.(map[string]interface{})
	if ev.Type != "new-scan" || data["url"] != "https://example.com" {
		t.Errorf("event = %s %v", ev.Type, ev.Data)
	}
}
