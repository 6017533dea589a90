package cache

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"specanalyzer/internal/model"
)

// StatsCache handles Redis operations for the analysis statistics
// dashboard
type StatsCache interface {
	RecordAnalysis(ctx context.Context, decision model.Decision, processingMS int64) error
	Snapshot(ctx context.Context) (*model.StatsSnapshot, error)
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

// Key helpers
func (c *statsCache) totalKey() string      { return "stats:analyses:total" }
func (c *statsCache) decisionsKey() string  { return "stats:analyses:decisions" }
func (c *statsCache) processingKey() string { return "stats:analyses:processing_ms" }

// RecordAnalysis bumps the counters for one completed analysis
func (c *statsCache) RecordAnalysis(ctx context.Context, decision model.Decision, processingMS int64) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, c.totalKey())
	pipe.HIncrBy(ctx, c.decisionsKey(), string(decision), 1)
	pipe.IncrBy(ctx, c.processingKey(), processingMS)
	_, err := pipe.Exec(ctx)
	return err
}

// Snapshot reads the current counters
func (c *statsCache) Snapshot(ctx context.Context) (*model.StatsSnapshot, error) {
	total, err := c.client.Get(ctx, c.totalKey()).Int64()
	if err == redis.Nil {
		total = 0
	} else if err != nil {
		return nil, err
	}

	fields, err := c.client.HGetAll(ctx, c.decisionsKey()).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[model.Decision]int64, len(fields))
	for decision, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		counts[model.Decision(decision)] = n
	}

	processed, err := c.client.Get(ctx, c.processingKey()).Int64()
	if err == redis.Nil {
		processed = 0
	} else if err != nil {
		return nil, err
	}

	snapshot := &model.StatsSnapshot{
		TotalAnalyses:    total,
		DecisionCounts:   counts,
		TotalProcessedMS: processed,
	}
	if total > 0 {
		snapshot.AvgProcessingMS = float64(processed) / float64(total)
	}
	return snapshot, nil
}
