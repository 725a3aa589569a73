package service

import (
	"fmt"
	"sync"

	"phishhook/internal/model"
)

const DefaultHistoryLimit = 100

// History is the bounded in-memory store of recent scans. It is a fixed-size
// ring, so appends stay O(1) no matter how many records have passed through.
type History struct {
	mu    sync.Mutex
	buf   []model.ScanRecord
	next  int // next write slot
	count int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{buf: make([]model.ScanRecord, limit)}
}

// Append inserts the record as the newest entry, evicting the oldest once the
// ring is full.
func (h *History) Append(r model.ScanRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.next] = r
	h.next = (h.next + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// Size returns the number of retained records.
func (h *History) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Snapshot returns a copy of the retained records, most recent first. The
// copy is safe to hand to a subscriber without holding the lock during
// transmission.
func (h *History) Snapshot() []model.ScanRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.ScanRecord, h.count)
	newest := h.next - 1
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(newest-i+len(h.buf))%len(h.buf)]
	}
	return out
}

// Stats summarizes the retained records. The dataset set sizes are filled in
// by the caller; the store only knows about scans.
func (h *History) Stats() model.Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := h.count
	safe := 0
	newest := h.next - 1
	for i := 0; i < h.count; i++ {
		if h.buf[(newest-i+len(h.buf))%len(h.buf)].IsSafe {
			safe++
		}
	}
	phishing := total - safe

	stats := model.Stats{
		TotalScans:         total,
		SafeScans:          safe,
		PhishingScans:      phishing,
		SafePercentage:     "0",
		PhishingPercentage: "0",
	}
	if total > 0 {
		stats.SafePercentage = fmt.Sprintf("%.1f", float64(safe)/float64(total)*100)
		stats.PhishingPercentage = fmt.Sprintf("%.1f", float64(phishing)/float64(total)*100)
	}
	return stats
}
