package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"phishhook/internal/storage"
	"phishhook/internal/utils"
)

// Scheduler runs periodic maintenance: an hourly stats summary in the logs
// and, when Redis is available, a refreshed stats snapshot for dashboards.
type Scheduler struct {
	Cron    *cron.Cron
	History *History
	Dataset *Dataset
	Storage *storage.Storage
}

func NewScheduler(history *History, data *Dataset, store *storage.Storage) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(),
		History: history,
		Dataset: data,
		Storage: store,
	}
}

func (s *Scheduler) Start() {
	_, _ = s.Cron.AddFunc("@every 1h", s.RunStatsJob)
	s.Cron.Start()
	utils.Log.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.Cron.Stop()
}

func (s *Scheduler) RunStatsJob() {
	stats := s.History.Stats()
	stats.KnownLegitimateUrls = s.Dataset.LegitimateCount()
	stats.KnownPhishingUrls = s.Dataset.PhishingCount()

	utils.Log.Info("scan stats",
		utils.Field("total", stats.TotalScans),
		utils.Field("safe", stats.SafeScans),
		utils.Field("phishing", stats.PhishingScans))

	if s.Storage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Storage.SetStatsSnapshot(ctx, stats); err != nil {
		utils.Log.Warn("stats snapshot write failed", utils.Field("error", err.Error()))
	}
}
