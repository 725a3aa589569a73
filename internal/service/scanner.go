package service

import (
	"context"
	"time"

	"phishhook/internal/metrics"
	"phishhook/internal/model"
	"phishhook/internal/utils"
)

// Archive persists scans beyond the live in-memory window. Satisfied by
// storage.Storage; nil disables archiving.
type Archive interface {
	AddScan(ctx context.Context, r model.ScanRecord) error
}

// Scanner is the single scan path shared by the HTTP and websocket entry
// points: validate, classify, record, archive, broadcast.
type Scanner struct {
	Engine  *Engine
	History *History
	Hub     *Hub
	Archive Archive
}

func NewScanner(engine *Engine, history *History, hub *Hub, archive Archive) *Scanner {
	return &Scanner{
		Engine:  engine,
		History: history,
		Hub:     hub,
		Archive: archive,
	}
}

// Scan classifies the URL and distributes the result. It returns ErrInvalidURL
// for input that is not an absolute URL; any archive failure is logged and
// absorbed so one backend hiccup never fails a scan.
func (s *Scanner) Scan(ctx context.Context, rawURL string) (model.ScanRecord, model.Analysis, error) {
	if err := ValidateURL(rawURL); err != nil {
		return model.ScanRecord{}, model.Analysis{}, err
	}

	analysis := s.Engine.Classify(rawURL)
	record := model.ScanRecord{
		Timestamp: time.Now().UnixMilli(),
		URL:       rawURL,
		IsSafe:    analysis.IsSafe,
		Message:   analysis.Message,
	}

	s.History.Append(record)

	if s.Archive != nil {
		if err := s.Archive.AddScan(ctx, record); err != nil {
			utils.Log.Warn("scan archive write failed",
				utils.Field("url", rawURL),
				utils.Field("error", err.Error()))
		}
	}

	verdict := "phishing"
	if record.IsSafe {
		verdict = "safe"
	}
	metrics.ScansTotal.WithLabelValues(verdict).Inc()

	if s.Hub != nil {
		s.Hub.Publish(record)
	}
	return record, analysis, nil
}
