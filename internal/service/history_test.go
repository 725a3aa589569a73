package service

import (
	"fmt"
	"sync"
	"testing"

	"phishhook/internal/model"
)

func record(i int, safe bool) model.ScanRecord {
	return model.ScanRecord{
		Timestamp: int64(i),
		URL:       fmt.Sprintf("https://site%d.com", i),
		IsSafe:    safe,
		Message:   "test",
	}
}

func TestHistoryBound(t *testing.T) {
	h := NewHistory(100)
	for i := 1; i <= 105; i++ {
		h.Append(record(i, true))
	}
	if h.Size() != 100 {
		t.Fatalf("Size = %d, want 100", h.Size())
	}

	snap := h.Snapshot()
	if len(snap) != 100 {
		t.Fatalf("snapshot length = %d, want 100", len(snap))
	}
	// Most recent first: records 105 down to 6, oldest 5 evicted.
	if snap[0].URL != "https://site105.com" {
		t.Errorf("newest = %s, want site105", snap[0].URL)
	}
	if snap[99].URL != "https://site6.com" {
		t.Errorf("oldest retained = %s, want site6", snap[99].URL)
	}
}

func TestHistoryOrder(t *testing.T) {
	h := NewHistory(10)
	for i := 1; i <= 3; i++ {
		h.Append(record(i, true))
	}
	snap := h.Snapshot()
	want := []string{"https://site3.com", "https://site2.com", "https://site1.com"}
	for i, w := range want {
		if snap[i].URL != w {
			t.Errorf("snap[%d] = %s, want %s", i, snap[i].URL, w)
		}
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := NewHistory(10)
	h.Append(record(1, true))

	snap := h.Snapshot()
	snap[0].URL = "https://tampered.com"

	if h.Snapshot()[0].URL != "https://site1.com" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestHistoryStatsEmpty(t *testing.T) {
	h := NewHistory(10)
	stats := h.Stats()
	if stats.TotalScans != 0 || stats.SafeScans != 0 || stats.PhishingScans != 0 {
		t.Errorf("counts = %+v, want zeros", stats)
	}
	if stats.SafePercentage != "0" || stats.PhishingPercentage != "0" {
		t.Errorf("percentages = %s/%s, want 0/0", stats.SafePercentage, stats.PhishingPercentage)
	}
}

func TestHistoryStats(t *testing.T) {
	h := NewHistory(10)
	h.Append(record(1, true))
	h.Append(record(2, true))
	h.Append(record(3, true))
	h.Append(record(4, false))

	stats := h.Stats()
	if stats.TotalScans != 4 || stats.SafeScans != 3 || stats.PhishingScans != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.SafePercentage != "75.0" {
		t.Errorf("SafePercentage = %s, want 75.0", stats.SafePercentage)
	}
	if stats.PhishingPercentage != "25.0" {
		t.Errorf("PhishingPercentage = %s, want 25.0", stats.PhishingPercentage)
	}
}

func TestHistoryConcurrentAppend(t *testing.T) {
	h := NewHistory(100)
	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				h.Append(record(g*50+i, i%2 == 0))
			}
		}(g)
	}
	wg.Wait()

	if h.Size() != 100 {
		t.Errorf("Size = %d, want 100", h.Size())
	}
	if got := len(h.Snapshot()); got != 100 {
		t.Errorf("snapshot length = %d, want 100", got)
	}
}
