package storage

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"phishhook/internal/model"
)

const (
	archiveKey   = "scan_archive"
	archiveLimit = 1000
	statsKey     = "stats_snapshot"
)

// Storage archives scans and stats snapshots in Redis. The in-memory history
// store stays authoritative; this is a best-effort mirror that outlives the
// live window.
type Storage struct {
	Client *redis.Client
}

func NewStorage(host, port string) *Storage {
	rdb := redis.NewClient(&redis.Options{
		Addr: host + ":" + port,
		DB:   0,
	})
	return &Storage{Client: rdb}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// AddScan pushes the record onto the capped archive list, newest first.
func (s *Storage) AddScan(ctx context.Context, r model.ScanRecord) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	pipe := s.Client.Pipeline()
	pipe.LPush(ctx, archiveKey, string(b))
	pipe.LTrim(ctx, archiveKey, 0, archiveLimit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentScans returns up to n archived records, newest first. Entries that no
// longer unmarshal are skipped.
func (s *Storage) RecentScans(ctx context.Context, n int) ([]model.ScanRecord, error) {
	vals, err := s.Client.LRange(ctx, archiveKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	records := make([]model.ScanRecord, 0, len(vals))
	for _, v := range vals {
		var r model.ScanRecord
		if err := json.Unmarshal([]byte(v), &r); err == nil {
			records = append(records, r)
		}
	}
	return records, nil
}

func (s *Storage) SetStatsSnapshot(ctx context.Context, stats model.Stats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, statsKey, string(b), 0).Err()
}

func (s *Storage) StatsSnapshot(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	val, err := s.Client.Get(ctx, statsKey).Result()
	if err != nil {
		return stats, err
	}
	err = json.Unmarshal([]byte(val), &stats)
	return stats, err
}
